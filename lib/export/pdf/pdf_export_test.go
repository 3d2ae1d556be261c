package pdfexport

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	dbmodels "probation-eval-backend/models/db"
)

func pngDataURL(t *testing.T) string {
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 40, 10))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestBuddhistDate(t *testing.T) {
	require.Equal(t, "17 February 2563", BuddhistDate("2020-02-17"))
	require.Equal(t, "-", BuddhistDate(""))
	require.Equal(t, "soon", BuddhistDate("soon"))
}

func TestDecodeDataURL(t *testing.T) {
	t.Run(`png`, func(t *testing.T) {
		body, imgType, err := DecodeDataURL(pngDataURL(t))
		require.NoError(t, err)
		require.Equal(t, "png", imgType)
		require.NotEmpty(t, body)
	})
	t.Run(`jpeg maps to jpg`, func(t *testing.T) {
		_, imgType, err := DecodeDataURL("data:image/jpeg;base64,AAAA")
		require.NoError(t, err)
		require.Equal(t, "jpg", imgType)
	})
	t.Run(`not a data url`, func(t *testing.T) {
		_, _, err := DecodeDataURL("signature")
		require.Error(t, err)
	})
	t.Run(`unsupported type`, func(t *testing.T) {
		_, _, err := DecodeDataURL("data:image/svg+xml;base64,AAAA")
		require.Error(t, err)
	})
}

func TestEvaluationForm(t *testing.T) {
	rec := dbmodels.Evaluation{
		EmployeeName:     "Somchai",
		EmployeeID:       "E001",
		StartDate:        "2024-01-01",
		DueProbationDate: "2024-04-30",
		Ratings:          dbmodels.Ratings{1: 7, 2: 5, 10: 3},
		PassProbation:    true,
		HrOpinion:        "Good attitude",
		AssessorSign:     pngDataURL(t),
		HrSign:           "data:image/png;base64,AAA",
	}
	file, err := NewInstance("").EvaluationForm(rec, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(file, []byte("%PDF-")))
}
