package dissectsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	lorawan "github.com/brocaar/lwdissect"
)

// memChecker flags every FCnt it has already seen, keyed per DevAddr.
type memChecker struct {
	seen map[lorawan.DevAddr]uint32
}

func (c *memChecker) Seen(_ context.Context, devAddr lorawan.DevAddr, fcnt uint32) (bool, error) {
	if last, ok := c.seen[devAddr]; ok && last >= fcnt {
		return true, nil
	}
	c.seen[devAddr] = fcnt
	return false, nil
}

type DissectServerTestSuite struct {
	suite.Suite

	checker *memChecker
	server  *httptest.Server
}

func (ts *DissectServerTestSuite) SetupSuite() {
	ts.checker = &memChecker{seen: make(map[lorawan.DevAddr]uint32)}
	ts.server = httptest.NewServer(NewHandler(HandlerConfig{
		ReplayChecker: ts.checker,
	}))
}

func (ts *DissectServerTestSuite) TearDownSuite() {
	ts.server.Close()
}

func (ts *DissectServerTestSuite) post(body dissectRequest) (int, dissectResponse) {
	assert := require.New(ts.T())

	b, err := json.Marshal(body)
	assert.NoError(err)

	resp, err := http.Post(ts.server.URL+"/v1/dissect", "application/json", bytes.NewReader(b))
	assert.NoError(err)
	defer resp.Body.Close()

	var out dissectResponse
	assert.NoError(json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (ts *DissectServerTestSuite) TestDissectJoinRequest() {
	assert := require.New(ts.T())

	appKey := "00000000000000000000000000000000"
	code, out := ts.post(dissectRequest{
		PHYPayload: "0000000000000000000100009581AB500017E39FADBC6E",
		AppKey:     &appKey,
	})

	assert.Equal(http.StatusOK, code)
	assert.NotNil(out.Tree)
	assert.Equal(lorawan.JoinRequest, out.Tree.MHDR.MType)
	assert.NotNil(out.Tree.MICDerived)
	assert.Equal(*out.Tree.MICInFrame, *out.Tree.MICDerived)
}

func (ts *DissectServerTestSuite) TestDissectReplayedFrame() {
	assert := require.New(ts.T())

	// Unconfirmed Data Up, FCnt 5; the second POST of the same frame
	// must be flagged by the replay checker.
	frame := dissectRequest{PHYPayload: "40C1D25201A5050003070703120864FE226A9E000000"}

	code, out := ts.post(frame)
	assert.Equal(http.StatusOK, code)
	assert.False(hasCategory(out.Diagnostics, categoryReplay))

	code, out = ts.post(frame)
	assert.Equal(http.StatusOK, code)
	assert.True(hasCategory(out.Diagnostics, categoryReplay))
}

func (ts *DissectServerTestSuite) TestBadRequests() {
	assert := require.New(ts.T())

	code, out := ts.post(dissectRequest{PHYPayload: "zz"})
	assert.Equal(http.StatusBadRequest, code)
	assert.NotEmpty(out.Error)

	badKey := "beef"
	code, out = ts.post(dissectRequest{PHYPayload: "40", AppKey: &badKey})
	assert.Equal(http.StatusBadRequest, code)
	assert.NotEmpty(out.Error)

	code, out = ts.post(dissectRequest{PHYPayload: "40", Region: "MARS"})
	assert.Equal(http.StatusBadRequest, code)
	assert.NotEmpty(out.Error)
}

func (ts *DissectServerTestSuite) TestUnknownRoute() {
	assert := require.New(ts.T())

	resp, err := http.Get(ts.server.URL + "/v1/dissect")
	assert.NoError(err)
	defer resp.Body.Close()
	assert.Equal(http.StatusNotFound, resp.StatusCode)
}

func hasCategory(diags []lorawan.Diagnostic, cat lorawan.Category) bool {
	for _, d := range diags {
		if d.Category == cat {
			return true
		}
	}
	return false
}

func TestDissectServer(t *testing.T) {
	suite.Run(t, new(DissectServerTestSuite))
}
