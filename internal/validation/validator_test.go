package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeMsg(t *testing.T, body string, dst any) string {
	t.Helper()
	err := DecodeJSON(strings.NewReader(body), dst)
	if err == nil {
		return ""
	}
	var verr *Error
	require.ErrorAs(t, err, &verr)
	return verr.Message
}

const validMaintenance = `{
	"scheduleDate": "2025-03-01",
	"offer": ["100"],
	"categoryId": "cat-1",
	"subcategoryIds": ["a"],
	"serviceId": "svc-1"
}`

func TestMaintenanceSchema_Valid(t *testing.T) {
	var req CreateMaintenanceRequest
	assert.Empty(t, decodeMsg(t, validMaintenance, &req))
	assert.Equal(t, []string{"a"}, req.SubcategoryIDs)
}

func TestMaintenanceSchema_FirstErrorInFieldOrder(t *testing.T) {
	var req CreateMaintenanceRequest
	msg := decodeMsg(t, `{"offer":[],"subcategoryIds":["a"]}`, &req)
	assert.Equal(t, `"scheduleDate" is required`, msg)
}

func TestMaintenanceSchema_Messages(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"scheduleDate":"tomorrow","offer":[],"categoryId":"c","subcategoryIds":["a"],"serviceId":"s"}`, `"scheduleDate" must be a valid date`},
		{`{"scheduleDate":"2025-03-01","categoryId":"c","subcategoryIds":["a"],"serviceId":"s"}`, `"offer" is required`},
		{`{"scheduleDate":"2025-03-01","offer":[],"categoryId":"c","subcategoryIds":[],"serviceId":"s"}`, `"subcategoryIds" must contain at least 1 items`},
		{`{"scheduleDate":"2025-03-01","offer":[],"categoryId":"c","subcategoryIds":["a"]}`, `"serviceId" is required`},
		{`{"scheduleDate":"2025-03-01","offer":[],"categoryId":"c","subcategoryIds":["a"],"serviceId":"s","cloudinaryVideoUrls":["nope"]}`, `"cloudinaryVideoUrls[0]" must be a valid uri`},
		{`{"scheduleDate":"2025-03-01","offer":"x","categoryId":"c","subcategoryIds":["a"],"serviceId":"s"}`, `"offer" must be an array`},
		{`{"scheduleDate":"2025-03-01","offer":[],"categoryId":"c","subcategoryIds":["a"],"serviceId":"s","extra":1}`, `"extra" is not allowed`},
		{``, `"value" is required`},
		{`{`, `invalid JSON body`},
	}
	for _, tc := range cases {
		var req CreateMaintenanceRequest
		assert.Equal(t, tc.want, decodeMsg(t, tc.body, &req), tc.body)
	}
}

func TestWhitelistSchema(t *testing.T) {
	var req CheckWhitelistRequest
	assert.Equal(t, `"categoryId" is required`, decodeMsg(t, `{"propertyId":"p"}`, &req))

	req = CheckWhitelistRequest{}
	assert.Empty(t, decodeMsg(t, `{"categoryId":"c","subcategoryIds":["s1"]}`, &req))
}

func TestSubCategorySchema(t *testing.T) {
	var req SubCategoryRequest
	assert.Equal(t, `"name" is required`, decodeMsg(t, `{"categoryId":"c"}`, &req))

	var upd UpdateSubCategoryRequest
	assert.Equal(t, `"name" length must be at least 1 characters long`, decodeMsg(t, `{"name":""}`, &upd))
}

func TestDecisionAndDecimalRules(t *testing.T) {
	var d DecisionRequest
	assert.Equal(t, `"decision" must be one of [APPROVED, REJECTED]`, decodeMsg(t, `{"decision":"MAYBE"}`, &d))

	var p PayMaintenanceRequest
	assert.Equal(t, `"amount" must be greater than 0`, decodeMsg(t, `{"amount":-5,"receiverId":"r"}`, &p))

	p = PayMaintenanceRequest{}
	assert.Empty(t, decodeMsg(t, `{"amount":"12.50","receiverId":"r"}`, &p))
	assert.Equal(t, "12.5", p.Amount.String())
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2025-03-01", "2025-03-01T10:00:00Z", "2025-03-01T10:00:00"} {
		_, err := ParseDate(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseDate("03/01/2025")
	assert.Error(t, err)
}
