package queries_test

import (
	"testing"

	"tracking/internal/adapters/out/memory"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackShipmentQuery(t *testing.T) {
	_, err := queries.NewTrackShipmentQuery("", queries.Requester{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewTrackShipmentQuery("no-digits!", queries.Requester{})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTrackShipmentQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := memory.NewShipmentStore()
	owner := kernel.NewUUID()
	enterprise := kernel.NewUUID()
	stranger := kernel.NewUUID()
	otherEnterprise := kernel.NewUUID()
	s := seed(t, store, "Track123", owner, enterprise, baseTime)

	directory := memory.NewEnterpriseDirectory(ports.EnterpriseProfile{ID: enterprise, Name: "Acme"})
	h := queries.NewTrackShipmentQueryHandler(store, directory, nil, nil)

	tests := []struct {
		name      string
		requester queries.Requester
		visible   bool
	}{
		{name: "owner", requester: queries.Requester{AccountID: &owner}, visible: true},
		{name: "enterprise credential", requester: queries.Requester{AccountID: &stranger, EnterpriseID: &enterprise}, visible: true},
		{name: "stranger", requester: queries.Requester{AccountID: &stranger}},
		{name: "other enterprise", requester: queries.Requester{EnterpriseID: &otherEnterprise}},
		{name: "anonymous", requester: queries.Requester{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewTrackShipmentQuery("Track123", tt.requester)
			require.NoError(t, err)

			view, err := h.Handle(ctx, query)

			if !tt.visible {
				require.ErrorIs(t, err, errs.ErrObjectNotFound)
				assert.Nil(t, view.Shipment)
				return
			}
			require.NoError(t, err)
			assert.True(t, view.Shipment.ID().IsEqual(s.ID()))
			assert.Equal(t, "Acme", view.Enterprise.Name)
		})
	}
}

func TestTrackShipmentQueryHandler_Handle_HiddenLooksLikeMissing(t *testing.T) {
	ctx := t.Context()
	store := memory.NewShipmentStore()
	seed(t, store, "Hidden1", kernel.NewUUID(), kernel.NewUUID(), baseTime)
	h := queries.NewTrackShipmentQueryHandler(store, nil, nil, nil)
	stranger := kernel.NewUUID()

	hiddenQuery, err := queries.NewTrackShipmentQuery("Hidden1", queries.Requester{AccountID: &stranger})
	require.NoError(t, err)
	missingQuery, err := queries.NewTrackShipmentQuery("Missing1", queries.Requester{AccountID: &stranger})
	require.NoError(t, err)

	_, hiddenErr := h.Handle(ctx, hiddenQuery)
	_, missingErr := h.Handle(ctx, missingQuery)

	require.ErrorIs(t, hiddenErr, errs.ErrObjectNotFound)
	require.ErrorIs(t, missingErr, errs.ErrObjectNotFound)
	assert.Equal(t, "object not found: shipment Hidden1", hiddenErr.Error())
	assert.Equal(t, "object not found: shipment Missing1", missingErr.Error())
}
