package logger

import (
	"io"
	"log"
	"os"
)

// New returns a logger writing to the file at path, or discarding all
// output if path is empty.
func New(path string) (l *log.Logger, err error) {
	if len(path) == 0 {
		l = log.New(io.Discard, "chip8: ", log.Ldate|log.Ltime|log.Lshortfile)
		return
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return
	}

	l = log.New(f, "chip8: ", log.Ldate|log.Ltime|log.Lshortfile)
	l.Printf("opened %v", path)

	return
}
