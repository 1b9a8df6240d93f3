package share

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukirin/cplist/internal/model"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := &Payload{
		Name: "CP29",
		Booths: []model.BoothRecord{
			{
				Type:   model.VenueDoujin,
				Number: "壹A-01",
				Name:   "萌新社",
				Products: []model.ProductRecord{
					{Name: "公式集", Price: 50, Quantity: 2, Status: model.StatusPending},
				},
			},
		},
	}

	token, err := Encode(payload)
	require.NoError(t, err)
	assert.NotContains(t, token, "+", "token must be URL-safe")
	assert.NotContains(t, token, "/", "token must be URL-safe")

	decoded, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "CP29", decoded.Name)
	require.Len(t, decoded.Booths, 1)
	assert.Equal(t, "壹A-01", decoded.Booths[0].Number)
	require.Len(t, decoded.Booths[0].Products, 1)
	assert.Equal(t, 50.0, decoded.Booths[0].Products[0].Price)
}

func TestEncodeOversizedList(t *testing.T) {
	payload := &Payload{Name: "huge"}
	for i := 0; i < 3000; i++ {
		payload.Booths = append(payload.Booths, model.BoothRecord{
			Type:   model.VenueDoujin,
			Number: fmt.Sprintf("壹A-%04d", i),
			// Random-looking names defeat compression enough to blow the cap.
			Name: fmt.Sprintf("社团%d%s", i*7919, strings.Repeat(fmt.Sprintf("%x", i*104729), 3)),
		})
	}

	_, err := Encode(payload)
	assert.ErrorIs(t, err, ErrTokenTooLong)
}

func TestDecodeMalformedToken(t *testing.T) {
	_, err := Decode("not a token!!")
	assert.Error(t, err)

	_, err = Decode("AAAA")
	assert.Error(t, err)
}
