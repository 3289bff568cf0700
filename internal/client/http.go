package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/service"
)

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// HTTPService talks to the JSON API served by cmd/server.
type HTTPService struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPService(cfg Config) *HTTPService {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Data  json.RawMessage    `json:"data"`
	Error *internal.AppError `json:"error"`
}

// do sends body as JSON and decodes the envelope's data into out when out is non-nil.
func (s *HTTPService) do(ctx context.Context, method, path string, body, out any) error {
	if s.baseURL == "" || s.token == "" {
		return ErrServiceUnavailable
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	if resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if env.Error != nil {
			msg = env.Error.Message
		}
		return &RemoteError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return nil
}

func idPath(prefix string, id int64, suffix string) string {
	return prefix + "/" + strconv.FormatInt(id, 10) + suffix
}

func (s *HTTPService) CreateProfile(ctx context.Context, email, username string) error {
	return s.do(ctx, http.MethodPost, "/api/profile", service.ProfileRequest{Email: email, Username: username}, nil)
}

// GetCallerProfile maps a 404 to an absent profile.
func (s *HTTPService) GetCallerProfile(ctx context.Context) (internal.Option[internal.UserProfile], error) {
	var p internal.UserProfile
	err := s.do(ctx, http.MethodGet, "/api/profile", nil, &p)
	if IsNotFound(err) {
		return internal.None[internal.UserProfile](), nil
	}
	if err != nil {
		return internal.None[internal.UserProfile](), err
	}
	return internal.Some(p), nil
}

func (s *HTTPService) SaveProfile(ctx context.Context, profile *internal.UserProfile) error {
	return s.do(ctx, http.MethodPut, "/api/profile", profile, nil)
}

func (s *HTTPService) GetPoints(ctx context.Context) (int64, error) {
	var points int64
	err := s.do(ctx, http.MethodGet, "/api/profile/points", nil, &points)
	return points, err
}

func (s *HTTPService) CompleteOnboarding(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/api/profile/onboarding/complete", nil, nil)
}

func (s *HTTPService) IsOnboardingCompleted(ctx context.Context) (bool, error) {
	var done bool
	err := s.do(ctx, http.MethodGet, "/api/profile/onboarding", nil, &done)
	return done, err
}

func (s *HTTPService) SetUsageDuration(ctx context.Context, months int) error {
	return s.do(ctx, http.MethodPut, "/api/profile/usage-duration", service.UsageDurationRequest{Months: months}, nil)
}

func (s *HTTPService) AddJournalEntry(ctx context.Context, content string) error {
	return s.do(ctx, http.MethodPost, "/api/journal", service.JournalRequest{Content: content}, nil)
}

func (s *HTTPService) AddMindfulnessActivity(ctx context.Context, activityType string, minutes int64) error {
	req := service.MindfulnessRequest{ActivityType: activityType, Duration: minutes}
	return s.do(ctx, http.MethodPost, "/api/mindfulness", req, nil)
}

func (s *HTTPService) ListMedications(ctx context.Context) ([]internal.MedicationRecord, error) {
	var meds []internal.MedicationRecord
	err := s.do(ctx, http.MethodGet, "/api/medications", nil, &meds)
	return meds, err
}

func (s *HTTPService) AddMedication(ctx context.Context, req *service.MedicationRequest) error {
	return s.do(ctx, http.MethodPost, "/api/medications", req, nil)
}

func (s *HTTPService) UpdateMedication(ctx context.Context, id int64, req *service.MedicationRequest) error {
	return s.do(ctx, http.MethodPut, idPath("/api/medications", id, ""), req, nil)
}

func (s *HTTPService) DeleteMedication(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, idPath("/api/medications", id, ""), nil, nil)
}

func (s *HTTPService) LogAdherence(ctx context.Context, id int64, taken bool, notes string) error {
	req := service.AdherenceRequest{Taken: taken, Notes: notes}
	return s.do(ctx, http.MethodPost, idPath("/api/medications", id, "/adherence"), req, nil)
}

func (s *HTTPService) ListDebts(ctx context.Context) ([]internal.DebtRecord, error) {
	var debts []internal.DebtRecord
	err := s.do(ctx, http.MethodGet, "/api/debts", nil, &debts)
	return debts, err
}

func (s *HTTPService) AddDebt(ctx context.Context, req *service.DebtRequest) error {
	return s.do(ctx, http.MethodPost, "/api/debts", req, nil)
}

func (s *HTTPService) UpdateDebt(ctx context.Context, id int64, req *service.DebtRequest) error {
	return s.do(ctx, http.MethodPut, idPath("/api/debts", id, ""), req, nil)
}

func (s *HTTPService) DeleteDebt(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, idPath("/api/debts", id, ""), nil, nil)
}

func (s *HTTPService) AddDebtPayment(ctx context.Context, id int64, req *service.PaymentRequest) error {
	return s.do(ctx, http.MethodPost, idPath("/api/debts", id, "/payments"), req, nil)
}

func (s *HTTPService) UpdateDebtStatus(ctx context.Context, id int64, status internal.DebtStatus) error {
	return s.do(ctx, http.MethodPut, idPath("/api/debts", id, "/status"), service.DebtStatusRequest{Status: status}, nil)
}

func (s *HTTPService) ManageRewards(ctx context.Context, req *service.RewardRequest) error {
	return s.do(ctx, http.MethodPost, "/api/rewards", req, nil)
}

func (s *HTTPService) UpdatePillarProgress(ctx context.Context, pillar internal.PillarID, progress int) error {
	req := service.PillarRequest{Pillar: string(pillar), Progress: progress}
	return s.do(ctx, http.MethodPut, "/api/pillars/"+url.PathEscape(string(pillar)), req, nil)
}

func (s *HTTPService) SaveQuizResponse(ctx context.Context, questionID, answer string) error {
	return s.do(ctx, http.MethodPost, "/api/quiz", service.QuizRequest{QuestionID: questionID, Answer: answer}, nil)
}

func (s *HTTPService) ListResources(ctx context.Context, term, resourceType string) ([]internal.Resource, error) {
	q := url.Values{}
	if term != "" {
		q.Set("q", term)
	}
	if resourceType != "" {
		q.Set("type", resourceType)
	}
	path := "/api/resources"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []internal.Resource
	err := s.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (s *HTTPService) AddResource(ctx context.Context, req *service.ResourceRequest) error {
	return s.do(ctx, http.MethodPost, "/api/resources", req, nil)
}

func (s *HTTPService) UpdateResource(ctx context.Context, id int64, req *service.ResourceRequest) error {
	return s.do(ctx, http.MethodPut, idPath("/api/resources", id, ""), req, nil)
}

func (s *HTTPService) DeleteResource(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, idPath("/api/resources", id, ""), nil, nil)
}

var _ Service = (*HTTPService)(nil)
