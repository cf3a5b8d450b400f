package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRawJSON prints an already encoded document, optionally indented.
// Indenting keeps key order, so block objects still lead with "meta".
func writeRawJSON(cmd *cobra.Command, data []byte, indent bool) error {
	out := cmd.OutOrStdout()
	if !indent {
		_, err := fmt.Fprintf(out, "%s\n", data)
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent json: %w", err)
	}
	buf.WriteByte('\n')
	_, err := out.Write(buf.Bytes())
	return err
}
