package activity_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"steward/internal/activity"
	"steward/internal/activity/store/memory"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
)

type ReaderSuite struct {
	suite.Suite
	store    *memory.Store
	reader   *activity.Reader
	ctx      context.Context
	tenantID id.TenantID
	entityID uuid.UUID
}

func (s *ReaderSuite) SetupTest() {
	s.store = memory.NewStore()
	s.ctx = context.Background()
	s.tenantID = id.TenantID(uuid.New())
	s.entityID = uuid.New()

	registry, err := activity.NewRegistry([]activity.Registration{
		{Kind: "department_updated", Version: 1, Decode: func(raw json.RawMessage) (activity.Item, error) {
			var p struct {
				Message string    `json:"message"`
				Date    time.Time `json:"date"`
			}
			if err := json.Unmarshal(raw, &p); err != nil {
				return activity.Item{}, err
			}
			return activity.Item{Date: p.Date, Message: p.Message}, nil
		}},
	})
	s.Require().NoError(err)
	s.reader = activity.NewReader(s.store, registry)
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderSuite))
}

func (s *ReaderSuite) append(message string, occurredAt time.Time) {
	s.appendTo(s.tenantID, s.entityID, message, occurredAt)
}

func (s *ReaderSuite) appendTo(tenantID id.TenantID, entityID uuid.UUID, message string, occurredAt time.Time) {
	payload, err := json.Marshal(map[string]any{"message": message, "date": occurredAt})
	s.Require().NoError(err)
	s.Require().NoError(s.store.Append(s.ctx, activity.Envelope{
		EntityType: activity.EntityDepartment,
		EntityID:   entityID,
		TenantID:   tenantID,
		OccurredAt: occurredAt,
		Kind:       "department_updated",
		Version:    1,
		Payload:    payload,
	}))
}

func (s *ReaderSuite) TestOrderingAndPagination() {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	s.Run("three events split across pages, newest first", func() {
		s.append("first", base)
		s.append("second", base.Add(time.Hour))
		s.append("third", base.Add(2*time.Hour))

		page, err := s.reader.GetPage(s.ctx, activity.EntityDepartment, s.entityID, s.tenantID, 1, 2)
		s.Require().NoError(err)
		s.Equal(uint(2), page.PageCount)
		s.Require().Len(page.Items, 2)
		s.Equal("third", page.Items[0].Message)
		s.Equal("second", page.Items[1].Message)

		page, err = s.reader.GetPage(s.ctx, activity.EntityDepartment, s.entityID, s.tenantID, 2, 2)
		s.Require().NoError(err)
		s.Equal(uint(2), page.PageCount)
		s.Require().Len(page.Items, 1)
		s.Equal("first", page.Items[0].Message)
	})
}

func (s *ReaderSuite) TestSimultaneousEventsKeepInsertionOrder() {
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s.append("earlier insert", at)
	s.append("later insert", at)

	page, err := s.reader.GetPage(s.ctx, activity.EntityDepartment, s.entityID, s.tenantID, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 2)
	s.Equal("later insert", page.Items[0].Message)
	s.Equal("earlier insert", page.Items[1].Message)
}

func (s *ReaderSuite) TestInputNormalization() {
	for i := 0; i < 11; i++ {
		s.append(fmt.Sprintf("event %d", i), time.Date(2026, 2, 1, 10, i, 0, 0, time.UTC))
	}

	s.Run("non-positive page reads the first page", func() {
		page, err := s.reader.GetPage(s.ctx, activity.EntityDepartment, s.entityID, s.tenantID, 0, 5)
		s.Require().NoError(err)
		s.Equal(uint(3), page.PageCount)
		s.Len(page.Items, 5)
		s.Equal("event 10", page.Items[0].Message)
	})

	s.Run("non-positive page size falls back to the default", func() {
		page, err := s.reader.GetPage(s.ctx, activity.EntityDepartment, s.entityID, s.tenantID, 1, -1)
		s.Require().NoError(err)
		s.Equal(uint(2), page.PageCount)
		s.Len(page.Items, activity.DefaultPageSize)
	})
}

func (s *ReaderSuite) TestPageBeyondLast() {
	s.append("only event", time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC))

	page, err := s.reader.GetPage(s.ctx, activity.EntityDepartment, s.entityID, s.tenantID, 5, 10)
	s.Require().NoError(err)
	s.Equal(uint(1), page.PageCount)
	s.Empty(page.Items)
}

func (s *ReaderSuite) TestEmptyHistory() {
	page, err := s.reader.GetPage(s.ctx, activity.EntityDepartment, s.entityID, s.tenantID, 1, 10)
	s.Require().NoError(err)
	s.Equal(uint(0), page.PageCount)
	s.Empty(page.Items)
}

func (s *ReaderSuite) TestTenantIsolation() {
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s.append("visible", at)
	s.appendTo(id.TenantID(uuid.New()), s.entityID, "other tenant", at)
	s.appendTo(s.tenantID, uuid.New(), "other entity", at)

	page, err := s.reader.GetPage(s.ctx, activity.EntityDepartment, s.entityID, s.tenantID, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("visible", page.Items[0].Message)
}

func (s *ReaderSuite) TestUnknownEventShapeFailsThePage() {
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s.append("decodable", at)
	s.Require().NoError(s.store.Append(s.ctx, activity.Envelope{
		EntityType: activity.EntityDepartment,
		EntityID:   s.entityID,
		TenantID:   s.tenantID,
		OccurredAt: at.Add(time.Hour),
		Kind:       "department_updated",
		Version:    9,
		Payload:    json.RawMessage(`{}`),
	}))

	_, err := s.reader.GetPage(s.ctx, activity.EntityDepartment, s.entityID, s.tenantID, 1, 10)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnknownEventShape))
}
