package io

import (
	"errors"
	"io"
	"log"
)

// BITBANGER_FLUSH_SIZE is the chunk size used to drain pending input.
const BITBANGER_FLUSH_SIZE = 512

// Bitbanger passes a byte stream between the emulated machine and a host
// image. With no image loaded, output is discarded and input is empty.
type Bitbanger struct {
	Verbose   bool   // If set, enables verbose logging.
	Interface string // Software list interface name.

	image    io.ReadWriter
	softlist bool
	readOnly bool
}

// Exists checks if an image is loaded.
func (bb *Bitbanger) Exists() bool {
	return bb.image != nil
}

// ReadOnly checks if the loaded image refuses writes.
func (bb *Bitbanger) ReadOnly() bool {
	return bb.readOnly
}

// Load an image, replacing any image already loaded.
func (bb *Bitbanger) Load(image io.ReadWriter) (err error) {
	err = bb.Unload()
	if err != nil {
		return
	}

	bb.image = image
	bb.softlist = false
	bb.readOnly = false

	if bb.Verbose {
		log.Printf("bitbanger: load")
	}

	return
}

// LoadSoftlist loads a read-only image from a software list.
func (bb *Bitbanger) LoadSoftlist(image io.Reader) (err error) {
	err = bb.Unload()
	if err != nil {
		return
	}

	bb.image = &readOnlyImage{Reader: image}
	bb.softlist = true
	bb.readOnly = true

	if bb.Verbose {
		log.Printf("bitbanger: load softlist %v", bb.Interface)
	}

	return
}

// Create a new image in a file system, and load it.
func (bb *Bitbanger) Create(filesys CreateFS, name string) (err error) {
	file, err := filesys.Create(name)
	if err != nil {
		return
	}

	err = bb.Load(&writeOnlyImage{WriteCloser: file})
	return
}

// Unload the image, closing it if possible.
func (bb *Bitbanger) Unload() (err error) {
	if bb.image == nil {
		return
	}

	if closer, ok := bb.image.(io.Closer); ok {
		err = closer.Close()
	}

	bb.image = nil
	bb.softlist = false
	bb.readOnly = false

	return
}

// Output writes a single byte. Images from a software list are never
// written.
func (bb *Bitbanger) Output(data byte) {
	if bb.softlist || !bb.Exists() {
		return
	}

	_, err := bb.image.Write([]byte{data})
	if err != nil && bb.Verbose {
		log.Printf("bitbanger: output: %v", err)
	}
}

// Send writes a buffer, returning the number of bytes written. With no
// image loaded the whole buffer is reported as sent.
func (bb *Bitbanger) Send(buf []byte) (n int) {
	if !bb.Exists() {
		n = len(buf)
		return
	}

	n, err := bb.image.Write(buf)
	if err != nil && bb.Verbose {
		log.Printf("bitbanger: send: %v", err)
	}

	return
}

// Write implements io.Writer over Send.
func (bb *Bitbanger) Write(buf []byte) (n int, err error) {
	n = bb.Send(buf)
	if n < len(buf) {
		err = io.ErrShortWrite
	}
	return
}

// Input reads what is available into a buffer, returning the number of
// bytes read. It does not wait for the buffer to fill.
func (bb *Bitbanger) Input(buf []byte) (n int) {
	if !bb.Exists() || len(buf) == 0 {
		return
	}

	n, err := bb.image.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) && bb.Verbose {
		log.Printf("bitbanger: input: %v", err)
	}

	return
}

// FlushRx discards the pending input. A short read means the image has
// nothing more buffered.
func (bb *Bitbanger) FlushRx() {
	if !bb.Exists() {
		return
	}

	var buf [BITBANGER_FLUSH_SIZE]byte
	for {
		n := bb.Input(buf[:])
		if n < len(buf) {
			return
		}
	}
}

type readOnlyImage struct {
	io.Reader
}

func (img *readOnlyImage) Write(buf []byte) (int, error) {
	return 0, ErrImageReadOnly
}

type writeOnlyImage struct {
	io.WriteCloser
}

func (img *writeOnlyImage) Read(buf []byte) (int, error) {
	return 0, io.EOF
}
