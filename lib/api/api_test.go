package api

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"math/big"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/voteweigher/lib/common"
	"boscoin.io/voteweigher/lib/quorum"
)

func TestAPIPostAndGetQuorum(t *testing.T) {
	ts, _, _, err := prepareAPIServer()
	require.NoError(t, err)
	defer ts.Close()

	strategy := quorum.TestMakeAddress()
	body := fmt.Sprintf(`{"entries":[{"strategy":"%s","multiplier":"1000000000000000000"}]}`, strategy.Hex())

	resp, err := request(ts, "POST", "/quorums", body, false)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 201, resp.StatusCode)

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var created map[string]interface{}
	common.MustUnmarshalJSON(readByte, &created)
	require.Equal(t, float64(0), created["number"])

	{
		resp, err := request(ts, "GET", "/quorums/0", "", false)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode)

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var got map[string]interface{}
		common.MustUnmarshalJSON(readByte, &got)
		require.Equal(t, float64(0), got["number"])
		entries := got["entries"].([]interface{})
		require.Equal(t, 1, len(entries))
		entry := entries[0].(map[string]interface{})
		require.Equal(t, strategy.Hex(), entry["strategy"])
		require.Equal(t, "1000000000000000000", entry["multiplier"])
	}
}

func TestAPIGetQuorumNotFound(t *testing.T) {
	ts, _, _, err := prepareAPIServer()
	require.NoError(t, err)
	defer ts.Close()

	resp, err := request(ts, "GET", "/quorums/0", "", false)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 404, resp.StatusCode)
}

func TestAPIGetStrategy(t *testing.T) {
	ts, _, _, err := prepareAPIServer()
	require.NoError(t, err)
	defer ts.Close()

	strategy := quorum.TestMakeAddress()
	body := fmt.Sprintf(`{"entries":[{"strategy":"%s","multiplier":"2000000000000000000"}]}`, strategy.Hex())
	resp, err := request(ts, "POST", "/quorums", body, false)
	require.NoError(t, err)
	resp.Body.Close()

	{
		resp, err := request(ts, "GET", "/quorums/0/strategies/0", "", false)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode)

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var got map[string]interface{}
		common.MustUnmarshalJSON(readByte, &got)
		require.Equal(t, strategy.Hex(), got["strategy"])
		require.Equal(t, "2000000000000000000", got["multiplier"])
	}

	{
		resp, err := request(ts, "GET", "/quorums/0/strategies/1", "", false)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 404, resp.StatusCode)
	}
}

func TestAPIMutateStrategies(t *testing.T) {
	ts, _, _, err := prepareAPIServer()
	require.NoError(t, err)
	defer ts.Close()

	resp, err := request(ts, "POST", "/quorums", `{"entries":[]}`, false)
	require.NoError(t, err)
	resp.Body.Close()

	s1 := quorum.TestMakeAddress()
	s2 := quorum.TestMakeAddress()
	body := fmt.Sprintf(
		`{"entries":[{"strategy":"%s","multiplier":"1000000000000000000"},{"strategy":"%s","multiplier":"1000000000000000000"}]}`,
		s1.Hex(), s2.Hex(),
	)
	resp, err = request(ts, "POST", "/quorums/0/strategies", body, false)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	resp, err = request(ts, "POST", "/quorums/0/multipliers", `{"indices":[1],"multipliers":["3000000000000000000"]}`, false)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	resp, err = request(ts, "POST", "/quorums/0/strategies/remove", `{"indices":[0]}`, false)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var got map[string]interface{}
	common.MustUnmarshalJSON(readByte, &got)
	entries := got["entries"].([]interface{})
	require.Equal(t, 1, len(entries))
	entry := entries[0].(map[string]interface{})
	require.Equal(t, s2.Hex(), entry["strategy"])
	require.Equal(t, "3000000000000000000", entry["multiplier"])
}

func TestAPIMutateInvalid(t *testing.T) {
	ts, _, _, err := prepareAPIServer()
	require.NoError(t, err)
	defer ts.Close()

	resp, err := request(ts, "POST", "/quorums", `{"entries":[]}`, false)
	require.NoError(t, err)
	resp.Body.Close()

	// ascending indices
	resp, err = request(ts, "POST", "/quorums/0/strategies/remove", `{"indices":[0,1]}`, false)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 400, resp.StatusCode)

	// mismatched lengths
	resp, err = request(ts, "POST", "/quorums/0/multipliers", `{"indices":[0,1],"multipliers":["1000000000000000000"]}`, false)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 400, resp.StatusCode)

	// caller header is required on mutations
	req, err := http.NewRequest("POST", ts.URL+"/quorums", nil)
	require.NoError(t, err)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 400, resp.StatusCode)
}

func TestAPIGetWeight(t *testing.T) {
	ts, _, ledger, err := prepareAPIServer()
	require.NoError(t, err)
	defer ts.Close()

	strategy := quorum.TestMakeAddress()
	body := fmt.Sprintf(`{"entries":[{"strategy":"%s","multiplier":"2000000000000000000"}]}`, strategy.Hex())
	resp, err := request(ts, "POST", "/quorums", body, false)
	require.NoError(t, err)
	resp.Body.Close()

	operator := quorum.TestMakeAddress()
	staker := quorum.TestMakeAddress()
	require.NoError(t, ledger.SetShares(staker, strategy, big.NewInt(100)))
	ledger.Delegate(staker, operator)

	resp, err = request(ts, "GET", "/quorums/0/weight/"+operator.Hex(), "", false)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var got map[string]interface{}
	common.MustUnmarshalJSON(readByte, &got)
	require.Equal(t, "200", got["weight"])
	require.Equal(t, operator.Hex(), got["operator"])
}

func TestAPIGetQuorumStream(t *testing.T) {
	ts, _, _, err := prepareAPIServer()
	require.NoError(t, err)
	defer ts.Close()

	resp, err := request(ts, "POST", "/quorums", `{"entries":[]}`, false)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = request(ts, "GET", "/quorums/0", "", true)
	require.NoError(t, err)
	defer resp.Body.Close()

	// the first chunk is the current state
	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadBytes('\n')
	require.NoError(t, err)

	var got map[string]interface{}
	common.MustUnmarshalJSON(line, &got)
	require.Equal(t, float64(0), got["number"])
}

func TestAPIGetQuorumsStream(t *testing.T) {
	ts, _, _, err := prepareAPIServer()
	require.NoError(t, err)
	defer ts.Close()

	for i := 0; i < 2; i++ {
		resp, err := request(ts, "POST", "/quorums", `{"entries":[]}`, false)
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := request(ts, "GET", "/quorums", "", true)
	require.NoError(t, err)
	defer resp.Body.Close()

	// every existing quorum is rendered before new events
	reader := bufio.NewReader(resp.Body)
	for i := 0; i < 2; i++ {
		line, err := reader.ReadBytes('\n')
		require.NoError(t, err)

		var got map[string]interface{}
		common.MustUnmarshalJSON(line, &got)
		require.Equal(t, float64(i), got["number"])
	}
}
