package sheets

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/yukirin/cplist/internal/common"
	"github.com/yukirin/cplist/internal/engine"
	"github.com/yukirin/cplist/internal/model"
)

func TestPrepareListData(t *testing.T) {
	w := &Writer{config: DefaultConfig(), logger: slog.Default()}

	groups := []engine.Group{
		{
			Label: "壹馆",
			Type:  model.VenueDoujin,
			Booths: []model.BoothRecord{
				{
					Number: "壹A-01",
					Name:   "萌新社",
					Products: []model.ProductRecord{
						{Name: "公式集", Price: 50, Quantity: 2, Status: model.StatusBought},
						{Name: "徽章", Price: 10, Quantity: 1, Status: model.StatusPending},
					},
				},
			},
		},
		{
			Label: "创摊",
			Type:  model.VenueCreative,
			Booths: []model.BoothRecord{
				{Number: "创07", Name: "手作摊"},
			},
		},
	}

	values := w.prepareListData("CP29", groups)

	// Title, blank, then hall sections, then the totals row.
	require.NotEmpty(t, values)
	assert.Equal(t, "CP29", values[0][0])

	assert.Equal(t, []any{"壹馆"}, values[2])
	assert.Equal(t, "摊位号", values[3][0])
	assert.Equal(t, "壹A-01", values[4][0])
	assert.Equal(t, "✓", values[4][6])
	assert.Equal(t, "", values[5][0], "continuation rows leave booth columns blank")
	assert.Equal(t, "徽章", values[5][3])

	last := values[len(values)-1]
	assert.Equal(t, "合计", last[0])
	assert.Equal(t, "共 2 个摊位", last[1])
	assert.Equal(t, 110.0, last[4])
}

func TestClassifyAPIError(t *testing.T) {
	rateLimited := fmt.Errorf("write: %w", &googleapi.Error{Code: 429})
	assert.ErrorIs(t, classifyAPIError(rateLimited), common.ErrRateLimit)

	forbidden := fmt.Errorf("write: %w", &googleapi.Error{Code: 403})
	var retryable *common.RetryableError
	require.ErrorAs(t, classifyAPIError(forbidden), &retryable)
	assert.False(t, retryable.Retryable)

	serverErr := fmt.Errorf("write: %w", &googleapi.Error{Code: 503})
	assert.Equal(t, serverErr, classifyAPIError(serverErr))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, classifyAPIError(plain))
}
