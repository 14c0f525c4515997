package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteFmi writes the textual representation of g to w.
func WriteFmi(g *Graph, w io.Writer) error {
	writer := bufio.NewWriter(w)
	if _, err := writer.WriteString(g.AsString()); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	return writer.Flush()
}

// WriteFmiFile writes the textual representation of g to filename.
func WriteFmiFile(g *Graph, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteFmi(g, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
