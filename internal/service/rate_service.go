package service

import (
	"go-pos-console/internal/model"
	"go-pos-console/internal/repository"
	"go-pos-console/internal/ws"
)

// RateService keeps the USD to local currency history. The newest entry is the current rate.
type RateService interface {
	Current() (*model.ExchangeRate, error)
	History() ([]model.ExchangeRate, error)
	Save(req *model.ExchangeRateRequest, actor Actor) (*model.ExchangeRate, error)
}

type rateService struct {
	repo  repository.ExchangeRateRepository
	audit AuditService
	wsHub *ws.Hub
}

func NewRateService(repo repository.ExchangeRateRepository, audit AuditService, hub *ws.Hub) RateService {
	return &rateService{repo: repo, audit: audit, wsHub: hub}
}

func (s *rateService) Current() (*model.ExchangeRate, error) {
	rate, err := s.repo.Latest()
	if err != nil {
		return nil, ErrNoExchangeRate
	}
	return rate, nil
}

func (s *rateService) History() ([]model.ExchangeRate, error) {
	return s.repo.FindAll()
}

func (s *rateService) Save(req *model.ExchangeRateRequest, actor Actor) (*model.ExchangeRate, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	rate := &model.ExchangeRate{Rate: req.Rate, CreatedBy: actor.Name}
	if err := s.repo.Create(rate); err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(actor, ActionRateSave, map[string]float64{"rate": rate.Rate})
	}
	s.wsHub.Publish(ws.Event{Type: ws.TypeRate, Action: "create", Data: rate, User: actor.Name})
	return rate, nil
}
