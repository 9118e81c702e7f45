package gateway

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/phuchau23/CarS/internal/reminder"
	"gorm.io/gorm"
)

func TestTransitionErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&reminder.InvalidTransitionError{From: reminder.StatusDismissed, To: reminder.StatusSent}, http.StatusConflict},
		{fmt.Errorf("update: %w", &reminder.InvalidTransitionError{From: reminder.StatusCompleted, To: reminder.StatusCompleted}), http.StatusConflict},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{fmt.Errorf("get reminder: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{fmt.Errorf("target status required"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := transitionErrorStatus(tc.err); got != tc.want {
			t.Fatalf("transitionErrorStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
