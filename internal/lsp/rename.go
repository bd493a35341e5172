package lsp

import (
	"encoding/json"
	"fmt"
	"io"
)

// RenameTarget identifies the symbol being renamed.
type RenameTarget struct {
	URI       string
	Line      int // 0-based
	Character int // 0-based, UTF-16 code units
}

// WriteRenameRequest writes a framed textDocument/rename request asking the
// language server to rename the symbol at target to newName.
func WriteRenameRequest(w io.Writer, id int, target RenameTarget, newName string) error {
	if target.URI == "" {
		return fmt.Errorf("rename request: missing document URI")
	}
	if newName == "" {
		return fmt.Errorf("rename request: empty name")
	}
	pos, err := toLSPPosition(target.Line, target.Character)
	if err != nil {
		return fmt.Errorf("rename request: %w", err)
	}
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  "textDocument/rename",
		Params: renameParams{
			TextDocument: textDocumentIdentifier{URI: target.URI},
			Position:     pos,
			NewName:      newName,
		},
	})
	if err != nil {
		return err
	}
	return WriteMessage(w, payload)
}
