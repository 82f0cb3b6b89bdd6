package systems

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Save file layout, little endian, no header or version:
//
//	uint32 width
//	uint32 height
//	width*height records, x outer, y inner:
//	    uint32  spore type
//	    float32 size
//	    float32 decay timer

const cellRecordSize = 12

// Save writes the grid to w.
func (f *PlayingField) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(f.width))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(f.height))
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var rec [cellRecordSize]byte
	for i := range f.cells {
		c := &f.cells[i]
		binary.LittleEndian.PutUint32(rec[0:], uint32(c.Type))
		binary.LittleEndian.PutUint32(rec[4:], math.Float32bits(c.Size))
		binary.LittleEndian.PutUint32(rec[8:], math.Float32bits(c.DecayTimer))
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("writing cell (%d, %d): %w", c.X, c.Y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing field: %w", err)
	}
	return nil
}

// Load replaces the grid with one read from r. The dimensions come from the
// stream. On any error the field is left as it was.
func (f *PlayingField) Load(r io.Reader) error {
	br := bufio.NewReader(r)

	var hdr [8]byte
	if err := readFull(br, hdr[:]); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	width := int(binary.LittleEndian.Uint32(hdr[0:]))
	height := int(binary.LittleEndian.Uint32(hdr[4:]))
	if !validDimensions(width, height) {
		return fmt.Errorf("loading %dx%d field: %w", width, height, ErrInvalidDimensions)
	}

	cells := f.buildGrid(width, height)
	var rec [cellRecordSize]byte
	for i := range cells {
		c := &cells[i]
		if err := readFull(br, rec[:]); err != nil {
			return fmt.Errorf("reading cell (%d, %d): %w", c.X, c.Y, err)
		}
		t := SporeType(binary.LittleEndian.Uint32(rec[0:]))
		if !t.Valid() {
			return fmt.Errorf("cell (%d, %d) has type %d: %w", c.X, c.Y, uint32(t), ErrInvalidSporeType)
		}
		c.Type = t
		c.Size = math.Float32frombits(binary.LittleEndian.Uint32(rec[4:]))
		c.DecayTimer = math.Float32frombits(binary.LittleEndian.Uint32(rec[8:]))
		if t.IsPortal() {
			c.PortalGrowTimer = float32(f.values.PortalGrowTimer)
		}
	}

	f.cells = cells
	f.width = width
	f.height = height
	f.instances = nil
	return nil
}

// readFull is io.ReadFull with truncation reported as ErrShortRead.
func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrShortRead, err)
	}
	return err
}

// SaveFile writes the grid to path.
func (f *PlayingField) SaveFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating save file: %w", err)
	}
	if err := f.Save(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadFile replaces the grid with the one stored at path.
func (f *PlayingField) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening save file: %w", err)
	}
	defer file.Close()
	return f.Load(file)
}
