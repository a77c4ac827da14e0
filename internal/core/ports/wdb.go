package ports

import "context"

// WriteDBService is the interface of the replicated write database
// collaborator, reduced to what the order lifecycle needs.
type WriteDBService interface {
	// CheckForSufficientFunds returns whether the given signing credential
	// holds enough balance to pay for one write to the database.
	CheckForSufficientFunds(ctx context.Context, privateKey string) (bool, error)
}
