package ports

import "context"

// TxManager scopes a function to one atomic unit of work. Nested calls
// join the transaction already carried by the context.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
