package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/validation"
)

// ListClients lists all clients or, with a name, searches through the
// wizard's debouncer. A newer search supersedes a pending one.
func (s *WizardService) ListClients(ctx context.Context, sessionID, wizardID, name string) (*dto.ClientStepView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	if err := w.requireStep(domain.StepClient); err != nil {
		return nil, err
	}

	seq, err := w.nextListSeq(s.now())
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	var clients []domain.Client
	fetch := func(ctx context.Context) error {
		return w.exec(ctx, func(ctx context.Context) error {
			var err error
			if name == "" {
				clients, err = w.api.ListClients(ctx)
			} else {
				clients, err = w.api.SearchClients(ctx, name)
			}
			return err
		})
	}
	if name == "" {
		err = fetch(ctx)
	} else {
		err = w.search.Do(ctx, fetch)
	}
	if err != nil {
		s.LogWarn(ctx, err, "Failed to list clients", slog.String("wizard_id", w.id), slog.String("name", name))
		return nil, err
	}

	var view *dto.ClientStepView
	err = w.update(s.now(), func() error {
		if seq == w.client.listSeq {
			w.client.clients = clients
		}
		view = w.clientViewLocked()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// CreateClient creates a client, refetches the list and selects the new client.
func (s *WizardService) CreateClient(ctx context.Context, sessionID, wizardID string, req dto.CreateClientRequest) (*dto.ClientStepView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	if err := w.requireStep(domain.StepClient); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var (
		created *domain.Client
		clients []domain.Client
	)
	err = w.guarded(ctx, "create-client", func(ctx context.Context) error {
		var err error
		created, err = w.api.CreateClient(ctx, portsrepo.NewClientInput{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.TrimSpace(req.Email),
			Phone:   strings.TrimSpace(req.Phone),
			Address: strings.TrimSpace(req.Address),
			Country: strings.TrimSpace(req.Country),
		})
		if err != nil {
			return err
		}
		list, listErr := w.api.ListClients(ctx)
		if listErr != nil {
			s.LogWarn(ctx, listErr, "Failed to refetch clients after create", slog.String("wizard_id", w.id))
			return nil
		}
		clients = list
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to create client", slog.String("wizard_id", w.id))
		return nil, err
	}

	var view *dto.ClientStepView
	err = w.update(s.now(), func() error {
		w.client.listSeq++
		if clients != nil {
			w.client.clients = clients
		}
		if indexOfClient(w.client.clients, created.ID) < 0 {
			w.client.clients = append(w.client.clients, *created)
		}
		selected := *created
		w.client.selected = &selected
		view = w.clientViewLocked()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Client created", slog.String("wizard_id", w.id), slog.String("client_id", created.ID))
	s.record(ctx, w, domain.EventClientCreated, map[string]any{"clientId": created.ID, "name": created.Name})
	return view, nil
}

// SelectClient selects a client from the last fetched list.
func (s *WizardService) SelectClient(ctx context.Context, sessionID, wizardID, clientID string) (*dto.ClientStepView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}

	var view *dto.ClientStepView
	err = w.update(s.now(), func() error {
		if err := w.requireStepLocked(domain.StepClient); err != nil {
			return err
		}
		i := indexOfClient(w.client.clients, clientID)
		if i < 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("client %s is not in the current list", clientID))
		}
		selected := w.client.clients[i]
		w.client.selected = &selected
		view = w.clientViewLocked()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SendClientReport asks the backend to send the client's report.
func (s *WizardService) SendClientReport(ctx context.Context, sessionID, wizardID, clientID string) error {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return err
	}
	if err := w.requireStep(domain.StepClient); err != nil {
		return err
	}
	if strings.TrimSpace(clientID) == "" {
		return apperrors.NewValidationError("client id is required")
	}

	err = w.guarded(ctx, "client-report", func(ctx context.Context) error {
		return w.api.SendClientReport(ctx, clientID)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to send client report", slog.String("wizard_id", w.id), slog.String("client_id", clientID))
		return err
	}
	s.record(ctx, w, domain.EventClientReportSent, map[string]any{"clientId": clientID})
	return nil
}

// CompleteClientStep hands the selected client to the controller.
func (s *WizardService) CompleteClientStep(ctx context.Context, sessionID, wizardID string) (*dto.WizardView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}

	var selected *domain.Client
	w.read(func() { selected = w.client.selected })
	if selected == nil {
		return nil, validation.NewFieldError(map[string]string{"clientId": "select a client before continuing"})
	}
	return s.completeStep(ctx, w, domain.ClientStepPayload{Client: *selected}, map[string]any{"clientId": selected.ID})
}

func (w *wizardSession) clientViewLocked() *dto.ClientStepView {
	clients := make([]domain.Client, len(w.client.clients))
	copy(clients, w.client.clients)
	view := &dto.ClientStepView{Clients: clients}
	if w.client.selected != nil {
		selected := *w.client.selected
		view.Selected = &selected
	}
	return view
}

func indexOfClient(clients []domain.Client, id string) int {
	for i, c := range clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}
