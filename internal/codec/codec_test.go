package codec_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchcore/internal/codec"
	"matchcore/internal/common"
	"matchcore/internal/engine"
	"matchcore/internal/money"
)

func mustDec(s string) money.Decimal {
	d, err := money.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseLimit(t *testing.T) {
	id := uuid.New()
	line := "1,limit," + id.String() + ",buy,2,100,GTC"

	timed, err := codec.ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, int64(1), timed.Now)

	cmd, ok := timed.Cmd.(engine.PlaceLimit)
	require.True(t, ok)
	assert.Equal(t, id, cmd.ID)
	assert.Equal(t, common.Buy, cmd.Side)
	assert.True(t, cmd.Amount.Equal(mustDec("2")))
	assert.True(t, cmd.Price.Equal(mustDec("100")))
	assert.Equal(t, common.GTC, cmd.TIF.Kind)
}

func TestParseLimitGTD(t *testing.T) {
	id := uuid.New()
	line := "1,limit," + id.String() + ",sell,1,50,GTD,5000"

	timed, err := codec.ParseLine(line)
	require.NoError(t, err)

	cmd, ok := timed.Cmd.(engine.PlaceLimit)
	require.True(t, ok)
	assert.Equal(t, common.GTD, cmd.TIF.Kind)
}

func TestParseLimitBadGTDLifetime(t *testing.T) {
	id := uuid.New()
	line := "1,limit," + id.String() + ",sell,1,50,GTD,0"

	_, err := codec.ParseLine(line)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrParse)
}

func TestParseMarket(t *testing.T) {
	id := uuid.New()
	line := "2,market," + id.String() + ",sell,1"

	timed, err := codec.ParseLine(line)
	require.NoError(t, err)

	cmd, ok := timed.Cmd.(engine.PlaceMarket)
	require.True(t, ok)
	assert.Equal(t, common.Sell, cmd.Side)
	assert.True(t, cmd.Amount.Equal(mustDec("1")))
}

func TestParseCancel(t *testing.T) {
	id := uuid.New()
	line := "3,cancel," + id.String()

	timed, err := codec.ParseLine(line)
	require.NoError(t, err)

	cmd, ok := timed.Cmd.(engine.Cancel)
	require.True(t, ok)
	assert.Equal(t, id, cmd.ID)
}

func TestParseFlush(t *testing.T) {
	timed, err := codec.ParseLine("4,flush")
	require.NoError(t, err)
	assert.Equal(t, int64(4), timed.Now)
	_, ok := timed.Cmd.(engine.Flush)
	assert.True(t, ok)
}

func TestParseUnknownKind(t *testing.T) {
	_, err := codec.ParseLine("1,bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrParse)
}

func TestParseBadTimestamp(t *testing.T) {
	_, err := codec.ParseLine("nope,flush")
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrParse)
}

func TestFormatResult(t *testing.T) {
	makerID := uuid.New()
	takerID := uuid.New()

	result := engine.MatchResult{
		Fills: []engine.Fill{
			{BaseAmount: mustDec("1"), Price: mustDec("100"), MakerID: makerID, TakerID: takerID},
		},
	}

	lines := codec.FormatResult(7, result)
	require.Len(t, lines, 1)
	assert.Equal(t, "7,fill,"+makerID.String()+","+takerID.String()+",1,100", lines[0])
}
