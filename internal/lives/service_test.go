package lives

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// emptyRepo answers every read with gorm.ErrRecordNotFound.
type emptyRepo struct{}

func (emptyRepo) Create(*Live) error { return nil }
func (emptyRepo) GetByID(uuid.UUID) (*Live, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyRepo) Update(uuid.UUID, map[string]interface{}) (*Live, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyRepo) Delete(uuid.UUID) error                      { return nil }
func (emptyRepo) GetAll(LiveListQuery) ([]Live, int64, error) { return nil, 0, nil }
func (emptyRepo) GetUpcoming(int) ([]Live, error)             { return nil, nil }

// Controllers map not-found to 404 via errors.Is, so the service must
// surface the sentinel rather than a fresh error value.
func TestMissingLiveSurfacesSentinel(t *testing.T) {
	svc := NewService(emptyRepo{})

	_, err := svc.GetLiveByID(uuid.New())
	assert.ErrorIs(t, err, ErrLiveNotFound)

	_, err = svc.UpdateLive(uuid.New(), "admin", UpdateLiveRequest{})
	assert.ErrorIs(t, err, ErrLiveNotFound)

	err = svc.DeleteLive(uuid.New())
	assert.ErrorIs(t, err, ErrLiveNotFound)
}
