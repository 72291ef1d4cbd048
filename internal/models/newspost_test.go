package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveType_Constant(t *testing.T) {
	require.Equal(t, "NewsPost", DeriveType(&NewsPost{}))
	require.Equal(t, NewsPostType, DeriveType(&NewsPost{ID: 42, Type: "ItemTwitter"}))
	require.Equal(t, NewsPostType, DeriveType(nil))
}

func TestCreateRequest_IgnoresClientType(t *testing.T) {
	var req CreateNewsPostRequest
	err := json.Unmarshal([]byte(`{"title":"t","description":"d","type":"Hacked","id":99}`), &req)
	require.NoError(t, err)

	require.Equal(t, CreateNewsPostRequest{Title: "t", Description: "d"}, req)
}
