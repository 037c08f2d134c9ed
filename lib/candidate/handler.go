package candidate

import (
	"context"
	"recruit-backend/db"
	candidatestore "recruit-backend/lib/candidate/store"
	applicationapimodels "recruit-backend/models/api/application"
)

type Provider interface {
	Profile(ctx context.Context, candidateID int64) (*applicationapimodels.CandidateProfile, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store candidatestore.Provider
}

// Profile returns nil for unknown candidates.
func (i impl) Profile(ctx context.Context, candidateID int64) (*applicationapimodels.CandidateProfile, error) {
	rec, err := i.store.GetByID(ctx, candidateID)
	if err != nil || rec == nil {
		return nil, err
	}
	return &applicationapimodels.CandidateProfile{
		ID:       rec.ID,
		FullName: rec.FullName,
		Email:    rec.Email,
		Phone:    rec.Phone,
		Headline: rec.Headline,
	}, nil
}

// Resolver adapts the provider to the facade callback.
func Resolver(provider Provider) applicationapimodels.ProfileResolver {
	return provider.Profile
}
