package historyService

import (
	assistantRepository "JarvisGolang/internal/api/assistant/repository"
	"JarvisGolang/internal/api/history"
	contextPkg "JarvisGolang/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IHistoryService interface {
	GetHistory(ctx context.Context) (history.HistoryResponse, error)
}

type historyService struct {
	log  *logrus.Logger
	repo assistantRepository.Repository
}

func New(log *logrus.Logger, repo assistantRepository.Repository) IHistoryService {
	return &historyService{
		log:  log,
		repo: repo,
	}
}

func (s *historyService) GetHistory(ctx context.Context) (history.HistoryResponse, error) {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetTurnID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return history.HistoryResponse{}, history.ErrFetchHistory
	}

	interactions, err := repo.Interactions.GetAllInteractions(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetTurnID(ctx),
			"error":      err.Error(),
		}).Error("Failed to fetch interaction history")
		return history.HistoryResponse{}, history.ErrFetchHistory
	}

	return history.HistoryResponse{
		Interactions: interactions,
		Count:        len(interactions),
	}, nil
}
