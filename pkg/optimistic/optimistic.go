// Package optimistic provides the single mutation primitive the cart
// operations share: apply a local state change immediately for instant
// feedback, confirm it against the backend, and restore the prior snapshot
// when confirmation fails.
package optimistic

// Apply runs one optimistic command. snapshot must return a copy that mutate
// cannot alias; after a failed confirm the state restored from it equals the
// state before the command was attempted.
func Apply[S any](snapshot func() S, mutate func(), confirm func() error, restore func(S)) error {
	prev := snapshot()
	mutate()
	if err := confirm(); err != nil {
		restore(prev)
		return err
	}
	return nil
}
