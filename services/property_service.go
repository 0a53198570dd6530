package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"guestdesk-backend/models"
)

// PropertyService looks up hotel property records for the report header.
type PropertyService struct {
	Client *APIClient

	log *zap.SugaredLogger
}

func NewPropertyService(client *APIClient, log *zap.SugaredLogger) *PropertyService {
	return &PropertyService{Client: client, log: log}
}

// ByID fetches one property.
func (s *PropertyService) ByID(ctx context.Context, sessionID, propertyID string) (*models.Property, error) {
	if propertyID == "" {
		return nil, fmt.Errorf("property id is empty")
	}

	query := url.Values{}
	query.Set("propertyId", propertyID)

	body, status, err := s.Client.Do(ctx, http.MethodGet, EndpointPropertyByID, query, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("property lookup: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("property lookup returned %d", status)
	}

	prop := &models.Property{ID: propertyID, Raw: json.RawMessage(body)}
	var parsed struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		prop.Name = parsed.Name
	}

	s.log.Infow("property resolved", "property_id", propertyID, "name", prop.Name)
	return prop, nil
}

// ForSession resolves the session's first property id and fetches it.
// Sessions without property ids are a soft miss, not an error surface.
func (s *PropertyService) ForSession(ctx context.Context, sess *models.StaffSession) (*models.Property, error) {
	ids := sess.PropertyIDList()
	if len(ids) == 0 {
		s.log.Warnw("session carries no property ids", "session_id", sess.ID)
		return nil, nil
	}
	return s.ByID(ctx, sess.ID, ids[0])
}
