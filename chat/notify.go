package chat

import (
	"fmt"
	"io"
	"os"
)

// Notifier is the one-shot "new message" signal, the terminal stand-in
// for the notification.mp3 the web widget plays.
type Notifier interface {
	Notify()
}

// BellNotifier rings the terminal bell.
type BellNotifier struct {
	W io.Writer
}

func NewBellNotifier() *BellNotifier {
	return &BellNotifier{W: os.Stdout}
}

func (b *BellNotifier) Notify() {
	fmt.Fprint(b.W, "\a")
}
