package export

import (
	"context"

	"github.com/eg467/docdirscan/internal/database"
	"github.com/eg467/docdirscan/internal/model"
)

// Stats is implemented by sinks that can report how many profiles were new
// versus already known. Run summaries pick it up when present.
type Stats interface {
	// Created returns the number of profiles first seen this session.
	Created() int

	// Repeated returns the number of profiles already known.
	Repeated() int
}

// IbxDBSink persists insurance-network profiles through a DocDB, creating a
// search session on StartSession and linking every profile to it.
type IbxDBSink struct {
	db        *database.DocDB
	specialty string
	session   *model.SearchSession
	created   int
	repeated  int
}

// NewIbxDBSink creates a database sink. specialty is recorded on the
// session row; it is a property of the search, not of any one profile.
func NewIbxDBSink(db *database.DocDB, specialty string) *IbxDBSink {
	return &IbxDBSink{db: db, specialty: specialty}
}

// StartSession creates the search session row.
func (s *IbxDBSink) StartSession(ctx context.Context, label, sourceURI string) error {
	session, err := s.db.StartSearch(ctx, label, sourceURI, s.specialty)
	if err != nil {
		return err
	}
	s.session = session
	return nil
}

// AddProfile upserts the profile and links it to the session.
func (s *IbxDBSink) AddProfile(ctx context.Context, profile *model.IbxProfile) error {
	created, err := s.db.AddIbxProfile(ctx, s.session, profile)
	if err != nil {
		return err
	}
	if created {
		s.created++
	} else {
		s.repeated++
	}
	return nil
}

// Save is a no-op: every profile is committed as it arrives.
func (s *IbxDBSink) Save() error { return nil }

// Created implements Stats.
func (s *IbxDBSink) Created() int { return s.created }

// Repeated implements Stats.
func (s *IbxDBSink) Repeated() int { return s.repeated }

// Session returns the session created by StartSession, nil before then.
func (s *IbxDBSink) Session() *model.SearchSession { return s.session }

// LvhnDBSink persists hospital-network profiles through a DocDB.
type LvhnDBSink struct {
	db        *database.DocDB
	specialty string
	session   *model.SearchSession
	created   int
	repeated  int
}

// NewLvhnDBSink creates a database sink for hospital-network profiles.
func NewLvhnDBSink(db *database.DocDB, specialty string) *LvhnDBSink {
	return &LvhnDBSink{db: db, specialty: specialty}
}

// StartSession creates the search session row and its image directory.
func (s *LvhnDBSink) StartSession(ctx context.Context, label, sourceURI string) error {
	session, err := s.db.StartSearch(ctx, label, sourceURI, s.specialty)
	if err != nil {
		return err
	}
	s.session = session
	return nil
}

// AddProfile upserts the profile and links it to the session.
func (s *LvhnDBSink) AddProfile(ctx context.Context, profile *model.LvhnProfile) error {
	created, err := s.db.AddLvhnProfile(ctx, s.session, profile)
	if err != nil {
		return err
	}
	if created {
		s.created++
	} else {
		s.repeated++
	}
	return nil
}

// Save is a no-op: every profile is committed as it arrives.
func (s *LvhnDBSink) Save() error { return nil }

// Created implements Stats.
func (s *LvhnDBSink) Created() int { return s.created }

// Repeated implements Stats.
func (s *LvhnDBSink) Repeated() int { return s.repeated }

// Session returns the session created by StartSession, nil before then.
func (s *LvhnDBSink) Session() *model.SearchSession { return s.session }
