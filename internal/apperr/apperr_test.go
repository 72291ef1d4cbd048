package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("service.Create: %w", ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("repo.Delete: %w", ErrNotFound), http.StatusNotFound},
		{ErrAuth, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestForbiddenIsAuth(t *testing.T) {
	require.ErrorIs(t, ErrForbidden, ErrAuth)
	require.NotErrorIs(t, ErrAuth, ErrForbidden)
}

func TestFromStatus(t *testing.T) {
	require.ErrorIs(t, FromStatus(http.StatusUnauthorized, "Отсутствует access token"), ErrAuth)
	require.ErrorIs(t, FromStatus(http.StatusForbidden, ""), ErrAuth)
	require.ErrorIs(t, FromStatus(http.StatusNotFound, "Новость не найдена"), ErrNotFound)
	require.ErrorIs(t, FromStatus(http.StatusBadRequest, ""), ErrValidation)

	err := FromStatus(http.StatusBadGateway, "upstream")
	require.NotErrorIs(t, err, ErrAuth)
	require.Contains(t, err.Error(), "502")
}
