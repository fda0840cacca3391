// Package ppm reads and writes binary (P6) portable pixmaps. Importing it
// registers the format with image.Decode.
package ppm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

const magic = "P6"

func init() {
	image.RegisterFormat("ppm", magic, Decode, DecodeConfig)
}

// Encode writes m as a P6 pixmap with a maxval of 255. Alpha is dropped.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, b.Dx(), b.Dy()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]byte, 0, b.Dx()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row = row[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
			row = append(row, c.R, c.G, c.B)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("write pixels: %w", err)
		}
	}
	return bw.Flush()
}

// DecodeConfig reads the dimensions from a P6 header.
func DecodeConfig(r io.Reader) (image.Config, error) {
	w, h, _, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: w, Height: h}, nil
}

// Decode reads a P6 pixmap. Only 8-bit samples (maxval < 256) are supported.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	w, h, maxval, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if maxval <= 0 || maxval > 255 {
		return nil, fmt.Errorf("ppm: unsupported maxval %d", maxval)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := make([]byte, w*3)
	for y := range h {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("ppm: read row %d: %w", y, err)
		}
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{
				R: scale(buf[x*3], maxval),
				G: scale(buf[x*3+1], maxval),
				B: scale(buf[x*3+2], maxval),
				A: 255,
			})
		}
	}
	return img, nil
}

func scale(v byte, maxval int) uint8 {
	if maxval == 255 {
		return v
	}
	return uint8(int(v) * 255 / maxval)
}

// readHeader parses "P6 <w> <h> <maxval>" with '#' comments, leaving br at
// the first pixel byte.
func readHeader(br *bufio.Reader) (w, h, maxval int, err error) {
	tok, err := token(br)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ppm: read magic: %w", err)
	}
	if tok != magic {
		return 0, 0, 0, fmt.Errorf("ppm: bad magic %q", tok)
	}
	var vals [3]int
	for i := range vals {
		tok, err := token(br)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("ppm: read header: %w", err)
		}
		if _, err := fmt.Sscanf(tok, "%d", &vals[i]); err != nil {
			return 0, 0, 0, fmt.Errorf("ppm: bad header field %q", tok)
		}
	}
	if vals[0] <= 0 || vals[1] <= 0 {
		return 0, 0, 0, fmt.Errorf("ppm: bad size %dx%d", vals[0], vals[1])
	}
	return vals[0], vals[1], vals[2], nil
}

// token reads one whitespace-delimited header token. The single whitespace
// byte that ends it is consumed.
func token(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case c == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}
