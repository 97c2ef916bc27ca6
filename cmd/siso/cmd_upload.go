package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"siso/internal/client/orchestrator"
	"siso/internal/client/transfer"
	"siso/internal/domain/entity"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload an audio file and record it",
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().String("title", "", "Track title")
	uploadCmd.Flags().String("file", "", "Path to an MP3, WAV or OGG file")
	_ = uploadCmd.MarkFlagRequired("file")
}

var extensionTypes = map[string]string{
	".mp3":  entity.ContentTypeMPEG,
	".mpeg": entity.ContentTypeMPEG,
	".wav":  entity.ContentTypeWAV,
	".ogg":  entity.ContentTypeOGG,
	".oga":  entity.ContentTypeOGG,
}

// contentTypeFor maps a file extension to its audio type. Unknown extensions
// return "" and are rejected by local validation.
func contentTypeFor(path string) string {
	return extensionTypes[strings.ToLower(filepath.Ext(path))]
}

func runUpload(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	path, _ := cmd.Flags().GetString("file")

	api, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	req := orchestrator.Request{
		Title:       title,
		FileName:    filepath.Base(path),
		ContentType: contentTypeFor(path),
		Size:        info.Size(),
		Body:        f,
	}
	if err := orchestrator.Validate(req); err != nil {
		return err
	}

	me, err := api.Me(cmd.Context())
	if err != nil {
		return fmt.Errorf("resolve current user: %w", err)
	}
	if me.User == nil || me.User.ID == "" {
		return fmt.Errorf("resolve current user: empty identity")
	}

	flow := orchestrator.New(api, transfer.NewClient(), me.User.ID)
	flow.OnStateChange = func(from, to orchestrator.State) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s -> %s\n", from, to)
	}

	out, err := flow.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %q\n  id:  %s\n  url: %s\n  md5: %s\n",
		out.Record.Title, out.Record.ID, out.Record.FileURL, out.Checksum)
	return nil
}
