package driven

import "context"

// Saver hands finished artifacts to the user.
type Saver interface {
	// Save writes data under name and returns the location written.
	Save(ctx context.Context, name string, data []byte) (string, error)
}
