package assistantService

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"JarvisGolang/internal/api/assistant"
	contextPkg "JarvisGolang/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *assistantService) handleChatLog(ctx context.Context, _ string) assistant.DispatchResult {
	if err := s.exportChatLog(ctx); err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"error":   err.Error(),
		}).Error("Chat log export failed")

		s.voice.Speak(ctx, apologyChatLog)
		return assistant.DispatchResult{Response: apologyChatLog, Continue: true}
	}

	return assistant.DispatchResult{Response: "Chat log exported.", Continue: true}
}

// exportChatLog dumps every stored interaction to a CSV file and opens it.
// An empty table still produces a file with the header row.
func (s *assistantService) exportChatLog(ctx context.Context) error {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		return fmt.Errorf("%w: %v", assistant.ErrExportFailed, err)
	}

	interactions, err := repo.Interactions.GetAllInteractions(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", assistant.ErrExportFailed, err)
	}

	f, err := os.Create(s.cfg.ExportPath)
	if err != nil {
		return fmt.Errorf("%w: %v", assistant.ErrExportFailed, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "command", "response", "timestamp"}); err != nil {
		return err
	}
	for _, it := range interactions {
		row := []string{
			strconv.FormatInt(it.ID, 10),
			it.Command,
			it.Response,
			it.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := s.system.OpenFile(s.cfg.ExportPath); err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"path":    s.cfg.ExportPath,
			"error":   err.Error(),
		}).Warn("Could not open exported chat log")
	}

	return nil
}
