package imagesub

import (
	"image"
	"sync"
)

// Image wraps a decoded Go image as the runtime-facing decoded
// representation. Runtimes that need the pixel data extract it with Decoded
// before the reference is released.
type Image struct {
	mu     sync.Mutex
	img    image.Image
	format string
}

// Decoded returns the decoded pixels, or nil after release
func (i *Image) Decoded() image.Image {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.img
}

// Format reports the decoded format name ("png", "jpeg", "gif")
func (i *Image) Format() string { return i.format }

// Release drops the pixel reference. The installing runtime holds its own
// reference by the time this is called.
func (i *Image) Release() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.img = nil
}
