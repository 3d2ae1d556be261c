package workflow

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"probation-eval-backend/models"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		sig    Signatures
		status models.EvaluationStatus
	}{
		{Signatures{}, models.EvaluationStatusDraft},
		{Signatures{Assessor: "a"}, models.EvaluationStatusPendingHR},
		{Signatures{Assessor: "a", HR: "h"}, models.EvaluationStatusPendingApproval},
		{Signatures{Assessor: "a", HR: "h", Approver: "c"}, models.EvaluationStatusCompleted},
		{Signatures{Approver: "c"}, models.EvaluationStatusCompleted},
		{Signatures{HR: "h"}, models.EvaluationStatusPendingApproval},
	}
	for _, c := range cases {
		t.Run(string(c.status), func(t *testing.T) {
			first := DeriveStatus(c.sig)
			require.Equal(t, c.status, first)
			require.Equal(t, first, DeriveStatus(c.sig))
		})
	}
}

func TestCheckSign(t *testing.T) {
	t.Run(`hr while draft is phase guard`, func(t *testing.T) {
		err := CheckSign(models.RoleHR, models.RoleHR, models.EvaluationStatusDraft, false)
		require.True(t, IsKind(err, KindPhaseGuard))
		require.Equal(t, "assessor must act first", HumanMessage(err))
	})
	t.Run(`hr while pending hr`, func(t *testing.T) {
		require.NoError(t, CheckSign(models.RoleHR, models.RoleHR, models.EvaluationStatusPendingHR, false))
		sig, err := ApplySignature(Signatures{Assessor: "a"}, models.RoleHR, "h")
		require.NoError(t, err)
		require.Equal(t, models.EvaluationStatusPendingApproval, DeriveStatus(sig))
	})
	t.Run(`approver while pending hr`, func(t *testing.T) {
		err := CheckSign(models.RoleApprover, models.RoleApprover, models.EvaluationStatusPendingHR, false)
		require.True(t, IsKind(err, KindPhaseGuard))
	})
	t.Run(`approver while pending approval`, func(t *testing.T) {
		require.NoError(t, CheckSign(models.RoleApprover, models.RoleApprover, models.EvaluationStatusPendingApproval, false))
		sig, err := ApplySignature(Signatures{Assessor: "a", HR: "h"}, models.RoleApprover, "c")
		require.NoError(t, err)
		require.Equal(t, models.EvaluationStatusCompleted, DeriveStatus(sig))
	})
	t.Run(`foreign section is unauthorized`, func(t *testing.T) {
		err := CheckSign(models.RoleHR, models.RoleApprover, models.EvaluationStatusPendingApproval, false)
		require.True(t, IsKind(err, KindAuthorization))
		err = CheckSign(models.RoleAdmin, models.RoleAssessor, models.EvaluationStatusDraft, false)
		require.True(t, IsKind(err, KindAuthorization))
		err = CheckSign(models.RoleHR, models.RoleAssessor, models.EvaluationStatusDraft, true)
		require.True(t, IsKind(err, KindAuthorization))
	})
	t.Run(`authorization checked before phase`, func(t *testing.T) {
		err := CheckSign(models.RoleHR, models.RoleApprover, models.EvaluationStatusDraft, false)
		require.True(t, IsKind(err, KindAuthorization))
	})
	t.Run(`completed rejects everyone`, func(t *testing.T) {
		for _, role := range []models.UserRole{models.RoleAssessor, models.RoleHR, models.RoleApprover} {
			err := CheckSign(role, role, models.EvaluationStatusCompleted, false)
			require.True(t, IsKind(err, KindPhaseGuard))
		}
	})
	t.Run(`assessor only while draft`, func(t *testing.T) {
		require.NoError(t, CheckSign(models.RoleAssessor, models.RoleAssessor, models.EvaluationStatusDraft, false))
		err := CheckSign(models.RoleAssessor, models.RoleAssessor, models.EvaluationStatusPendingHR, false)
		require.True(t, IsKind(err, KindPhaseGuard))
	})
	t.Run(`empty payload`, func(t *testing.T) {
		sig, err := ApplySignature(Signatures{}, models.RoleAssessor, "")
		require.True(t, IsKind(err, KindValidation))
		require.Equal(t, Signatures{}, sig)
	})
}

func TestReset(t *testing.T) {
	t.Run(`clears all signatures`, func(t *testing.T) {
		for _, sig := range []Signatures{{}, {Assessor: "a"}, {Assessor: "a", HR: "h"}, {Assessor: "a", HR: "h", Approver: "c"}} {
			cleared := Reset(sig)
			require.Equal(t, Signatures{}, cleared)
			require.Equal(t, models.EvaluationStatusDraft, DeriveStatus(cleared))
		}
	})
	t.Run(`check reset`, func(t *testing.T) {
		require.NoError(t, CheckReset(models.RoleAdmin, models.EvaluationStatusCompleted, false))
		require.NoError(t, CheckReset(models.RoleAssessor, models.EvaluationStatusPendingHR, false))
		require.True(t, IsKind(CheckReset(models.RoleAdmin, models.EvaluationStatusDraft, false), KindPhaseGuard))
		require.True(t, IsKind(CheckReset(models.RoleHR, models.EvaluationStatusCompleted, false), KindAuthorization))
		require.True(t, IsKind(CheckReset(models.RoleAssessor, models.EvaluationStatusCompleted, true), KindAuthorization))
	})
}

func TestNextRole(t *testing.T) {
	role, ok := NextRole(models.EvaluationStatusPendingHR)
	require.True(t, ok)
	require.Equal(t, models.RoleHR, role)
	role, ok = NextRole(models.EvaluationStatusPendingApproval)
	require.True(t, ok)
	require.Equal(t, models.RoleApprover, role)
	_, ok = NextRole(models.EvaluationStatusCompleted)
	require.False(t, ok)
}

func TestKindOf(t *testing.T) {
	err := errors.Wrap(NotFoundError("evaluation not found"), "load")
	require.Equal(t, KindNotFound, KindOf(err))
	require.Equal(t, "evaluation not found", HumanMessage(err))
	require.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	require.False(t, IsKind(nil, KindUnknown))

	cause := errors.New("connection refused")
	tErr := TransportError(cause, "failed to save evaluation")
	require.Equal(t, KindTransport, KindOf(tErr))
	require.True(t, errors.Is(tErr, cause))
}
