package appointments

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstTimeUnmarshal(t *testing.T) {
	cases := []struct {
		body    string
		want    FirstTime
		wantErr bool
	}{
		{`{"firstTime":true}`, true, false},
		{`{"firstTime":false}`, false, false},
		{`{"firstTime":"oui"}`, true, false},
		{`{"firstTime":"OUI"}`, true, false},
		{`{"firstTime":" Non "}`, false, false},
		{`{}`, false, false},
		{`{"firstTime":null}`, false, false},
		{`{"firstTime":"yes"}`, false, true},
		{`{"firstTime":1}`, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			var req CreateRequest
			err := json.Unmarshal([]byte(tc.body), &req)
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidFirstTime), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, req.FirstTime)
		})
	}
}
