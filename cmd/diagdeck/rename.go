package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"diagdeck/internal/lsp"
	"diagdeck/internal/rename"
	"diagdeck/internal/trace"
	"diagdeck/internal/ui"
)

var renameCmd = &cobra.Command{
	Use:   "rename --text <name> [--uri <file-uri> --line N --character N]",
	Short: "Prompt for a new symbol name",
	Long: `Prompt for a new name for the selected symbol. The prompt starts in insert
mode with the whole name selected; enter confirms, escape or losing focus
cancels. Empty or unchanged input counts as a cancel and prints nothing.

With --uri the result is written to stdout as an LSP textDocument/rename
request; otherwise the new name is printed. Without a terminal the new name is
read as one line from stdin.`,
	Args: cobra.NoArgs,
	RunE: runRename,
}

func init() {
	renameCmd.Flags().String("text", "", "currently selected symbol name (required)")
	renameCmd.Flags().String("uri", "", "document URI or path; emits an LSP rename request when set")
	renameCmd.Flags().Int("line", 0, "0-based line of the symbol")
	renameCmd.Flags().Int("character", 0, "0-based character (UTF-16) of the symbol")
	renameCmd.Flags().Int("id", 1, "JSON-RPC request id")
	renameCmd.Flags().String("ui", "auto", "interactive prompt (auto|on|off)")
	renameCmd.Flags().Bool("no-normalize", false, "do not NFC-normalize the new name")
	_ = renameCmd.MarkFlagRequired("text")
}

func runRename(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	text, err := cmd.Flags().GetString("text")
	if err != nil {
		return fmt.Errorf("failed to get text flag: %w", err)
	}
	uri, err := cmd.Flags().GetString("uri")
	if err != nil {
		return fmt.Errorf("failed to get uri flag: %w", err)
	}
	line, err := cmd.Flags().GetInt("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}
	character, err := cmd.Flags().GetInt("character")
	if err != nil {
		return fmt.Errorf("failed to get character flag: %w", err)
	}
	id, err := cmd.Flags().GetInt("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	noNormalize, err := cmd.Flags().GetBool("no-normalize")
	if err != nil {
		return fmt.Errorf("failed to get no-normalize flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	mode, err := readUIMode("ui", uiFlag)
	if err != nil {
		return err
	}

	ctx, span := trace.BeginCtx(cmd.Context(), trace.ScopeDriver, "rename")
	defer span.End("")

	opts := []rename.Option{rename.WithNormalization(settings.Rename.Normalize && !noNormalize)}

	var (
		name string
		ok   bool
	)
	// промпт читает stdin и рисует в stderr
	if mode.enabled(os.Stdin, os.Stderr) {
		name, ok, err = ui.RunRenamePrompt(ctx, text, cmd.InOrStdin(), cmd.ErrOrStderr(), opts...)
	} else {
		name, ok, err = promptLine(ctx, text, cmd.InOrStdin(), cmd.ErrOrStderr(), quiet, opts...)
	}
	if err != nil {
		return err
	}
	span.WithExtra("ok", fmt.Sprint(ok))
	if !ok {
		if !quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "rename cancelled")
		}
		return nil
	}

	out := cmd.OutOrStdout()
	if uri == "" {
		_, err = fmt.Fprintln(out, name)
		return err
	}
	if !strings.Contains(uri, "://") {
		uri = lsp.PathToURI(uri)
	}
	return lsp.WriteRenameRequest(out, id, lsp.RenameTarget{URI: uri, Line: line, Character: character}, name)
}

// lineHost is the rename.Host for non-interactive use: insert mode prints
// the prompt and the input line starts empty, which replaces the selection.
type lineHost struct {
	out      io.Writer
	original string
	quiet    bool
}

func (h *lineHost) ActivateInsertMode(ctx context.Context) error {
	if h.quiet {
		return nil
	}
	_, err := fmt.Fprintf(h.out, "rename %s to: ", h.original)
	return err
}

func (h *lineHost) SelectAll(ctx context.Context) error {
	return ctx.Err()
}

// promptLine runs a session over one line of in. EOF before any input
// cancels.
func promptLine(ctx context.Context, original string, in io.Reader, out io.Writer, quiet bool, opts ...rename.Option) (string, bool, error) {
	var (
		name string
		ok   bool
	)
	session := rename.NewSession(original, &lineHost{out: out, original: original, quiet: quiet}, func(n string, accepted bool) {
		name, ok = n, accepted
	}, opts...)
	if err := session.Mount(ctx); err != nil {
		return "", false, err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if line == "" && errors.Is(err, io.EOF) {
		_ = session.Blur()
		return name, ok, nil
	}
	if err := session.SetText(strings.TrimRight(line, "\r\n")); err != nil {
		return "", false, err
	}
	if err := session.Confirm(); err != nil {
		return "", false, err
	}
	return name, ok, nil
}
