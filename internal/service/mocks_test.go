package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
)

type mockScheduleStore struct {
	settings map[string]*models.ScheduleSettings
	patterns map[string]map[int]*models.WeeklyPattern

	getSettingsErr error
	saveErr        error
	bulkErr        error
	saveCalls      int
	bulkCalls      int
}

func newMockScheduleStore() *mockScheduleStore {
	return &mockScheduleStore{
		settings: make(map[string]*models.ScheduleSettings),
		patterns: make(map[string]map[int]*models.WeeklyPattern),
	}
}

func (m *mockScheduleStore) GetSettings(ctx context.Context, mentorID string) (*models.ScheduleSettings, error) {
	if m.getSettingsErr != nil {
		return nil, m.getSettingsErr
	}
	if s, ok := m.settings[mentorID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockScheduleStore) UpsertSettings(ctx context.Context, settings *models.ScheduleSettings) error {
	cp := *settings
	m.settings[settings.MentorID] = &cp
	return nil
}

func (m *mockScheduleStore) ListPatterns(ctx context.Context, mentorID string) ([]models.WeeklyPattern, error) {
	days := m.patterns[mentorID]
	out := make([]models.WeeklyPattern, 0, len(days))
	for _, p := range days {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (m *mockScheduleStore) GetPattern(ctx context.Context, mentorID string, dayOfWeek int) (*models.WeeklyPattern, error) {
	if p, ok := m.patterns[mentorID][dayOfWeek]; ok {
		cp := *p
		cp.TimeBlocks = p.TimeBlocks.Clone()
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockScheduleStore) UpsertPattern(ctx context.Context, pattern *models.WeeklyPattern) error {
	if m.patterns[pattern.MentorID] == nil {
		m.patterns[pattern.MentorID] = make(map[int]*models.WeeklyPattern)
	}
	cp := *pattern
	cp.TimeBlocks = pattern.TimeBlocks.Clone()
	m.patterns[pattern.MentorID][pattern.DayOfWeek] = &cp
	return nil
}

func (m *mockScheduleStore) BulkUpsertPatterns(ctx context.Context, patterns []models.WeeklyPattern) error {
	m.bulkCalls++
	if m.bulkErr != nil {
		return m.bulkErr
	}
	for i := range patterns {
		if err := m.UpsertPattern(ctx, &patterns[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockScheduleStore) SaveSchedule(ctx context.Context, settings *models.ScheduleSettings, patterns []models.WeeklyPattern) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	if err := m.UpsertSettings(ctx, settings); err != nil {
		return err
	}
	return m.BulkUpsertPatterns(ctx, patterns)
}

type mockCache struct {
	store       map[string][]byte
	invalidated []string
	gets        int
	sets        int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.gets++
	raw, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = raw
	return nil
}

func (m *mockCache) InvalidateMentor(ctx context.Context, mentorID string) error {
	m.invalidated = append(m.invalidated, mentorID)
	for key := range m.store {
		delete(m.store, key)
	}
	return nil
}

type mockExceptionRepo struct {
	items     []models.Exception
	createErr error
	deleted   [][]string
}

func (m *mockExceptionRepo) ListByMentor(ctx context.Context, mentorID string) ([]models.Exception, error) {
	out := make([]models.Exception, 0)
	for _, e := range m.items {
		if e.MentorID == mentorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExceptionRepo) FindCovering(ctx context.Context, mentorID string, date time.Time) ([]models.Exception, error) {
	out := make([]models.Exception, 0)
	for _, e := range m.items {
		if e.MentorID == mentorID && e.Covers(date) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockExceptionRepo) FindOverlapping(ctx context.Context, mentorID string, start, end time.Time) ([]models.Exception, error) {
	out := make([]models.Exception, 0)
	for _, e := range m.items {
		if e.MentorID == mentorID && e.OverlapsRange(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExceptionRepo) Create(ctx context.Context, exception *models.Exception) error {
	if m.createErr != nil {
		return m.createErr
	}
	if exception.ID == "" {
		exception.ID = fmt.Sprintf("exc-%d", len(m.items)+1)
	}
	if exception.CreatedAt.IsZero() {
		exception.CreatedAt = time.Now().UTC()
	}
	m.items = append(m.items, *exception)
	return nil
}

func (m *mockExceptionRepo) DeleteByIDs(ctx context.Context, mentorID string, ids []string) error {
	m.deleted = append(m.deleted, ids)
	kept := m.items[:0]
	for _, e := range m.items {
		remove := false
		for _, id := range ids {
			if e.MentorID == mentorID && e.ID == id {
				remove = true
			}
		}
		if !remove {
			kept = append(kept, e)
		}
	}
	m.items = kept
	return nil
}

type mockBookingRepo struct {
	items     map[string]*models.Booking
	createErr error
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{items: make(map[string]*models.Booking)}
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	if booking.ID == "" {
		booking.ID = fmt.Sprintf("bkg-%d", len(m.items)+1)
	}
	booking.CreatedAt = time.Now().UTC()
	cp := *booking
	m.items[booking.ID] = &cp
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	if b, ok := m.items[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockBookingRepo) ListActiveBetween(ctx context.Context, mentorID string, start, end time.Time) ([]models.Booking, error) {
	out := make([]models.Booking, 0)
	for _, b := range m.items {
		if b.MentorID != mentorID || b.Status == models.BookingCancelled {
			continue
		}
		if b.StartAt.Before(end) && b.EndAt.After(start) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	b, ok := m.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.Status = status
	return nil
}

type mockTemplateRepo struct {
	items map[string]*models.Template
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{items: make(map[string]*models.Template)}
}

func (m *mockTemplateRepo) ListByMentor(ctx context.Context, mentorID string) ([]models.Template, error) {
	out := make([]models.Template, 0)
	for _, t := range m.items {
		if t.MentorID == mentorID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTemplateRepo) FindByID(ctx context.Context, id string) (*models.Template, error) {
	if t, ok := m.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTemplateRepo) Create(ctx context.Context, template *models.Template) error {
	if template.ID == "" {
		template.ID = fmt.Sprintf("tpl-%d", len(m.items)+1)
	}
	template.CreatedAt = time.Now().UTC()
	cp := *template
	m.items[template.ID] = &cp
	return nil
}

func (m *mockTemplateRepo) Delete(ctx context.Context, mentorID, id string) error {
	if t, ok := m.items[id]; ok && t.MentorID == mentorID {
		delete(m.items, id)
	}
	return nil
}
