package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mwillard/gameroom/internal/api"
	"github.com/mwillard/gameroom/internal/api/apierr"
	"github.com/mwillard/gameroom/internal/api/response"
	"github.com/mwillard/gameroom/internal/factory"
	"github.com/mwillard/gameroom/internal/testutil"
)

type APISuite struct {
	suite.Suite
	app    *factory.TestApp
	router http.Handler
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.router = api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		Registry:       s.app.Registry,
		RoomController: s.app.RoomController,
		Engine:         s.app.Engine,
	})
}

func (s *APISuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decodeRoomState(rec *httptest.ResponseRecorder) response.RoomState {
	var state response.RoomState
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func (s *APISuite) decodeError(rec *httptest.ResponseRecorder) apierr.ErrorResponse {
	var errResp apierr.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errResp))
	return errResp
}

func (s *APISuite) createRoom(code, playerID, name string) response.RoomState {
	s.app.MockRandom.QueueString(code)
	rec := s.request(http.MethodPost, "/api/v1/rooms", map[string]string{
		"player_id": playerID,
		"name":      name,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return s.decodeRoomState(rec)
}

func (s *APISuite) TestCreateRoom() {
	state := s.createRoom("AB2C4D", "alice", "Alice")

	s.Equal("AB2C4D", state.Room.Code)
	s.Equal("guess", state.Room.GameID)
	s.Equal("alice", state.Room.HostID)
	s.Equal("lobby", state.Phase)
	s.Require().Len(state.Room.Players, 1)
	s.Equal("host", state.Room.Players[0].Role)
}

func (s *APISuite) TestCreateRoomRequiresName() {
	rec := s.request(http.MethodPost, "/api/v1/rooms", map[string]string{
		"player_id": "alice",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(apierr.CodeMissingName, s.decodeError(rec).Error.Code)
}

func (s *APISuite) TestCreateRoomRejectsInvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", bytes.NewBufferString(`{nope`))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(apierr.CodeInvalidRequest, s.decodeError(rec).Error.Code)
}

func (s *APISuite) TestGetRoom() {
	s.createRoom("AB2C4D", "alice", "Alice")

	rec := s.request(http.MethodGet, "/api/v1/rooms/ab2c4d", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	state := s.decodeRoomState(rec)
	s.Equal("AB2C4D", state.Room.Code)
	s.Equal("lobby", state.Phase)
}

func (s *APISuite) TestGetRoomNotFound() {
	rec := s.request(http.MethodGet, "/api/v1/rooms/NOPE01", nil)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(apierr.CodeRoomNotFound, s.decodeError(rec).Error.Code)
}

func (s *APISuite) TestJoinRoom() {
	s.createRoom("AB2C4D", "alice", "Alice")

	rec := s.request(http.MethodPost, "/api/v1/rooms/AB2C4D/join", map[string]string{
		"player_id": "bob",
		"name":      "Bob",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	state := s.decodeRoomState(rec)
	s.Require().Len(state.Room.Players, 2)
	s.Equal("bob", state.Room.Players[1].ID)
	s.Equal("player", state.Room.Players[1].Role)
}

func (s *APISuite) TestJoinRoomNotFound() {
	rec := s.request(http.MethodPost, "/api/v1/rooms/NOPE01/join", map[string]string{
		"player_id": "bob",
		"name":      "Bob",
	})

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(apierr.CodeRoomNotFound, s.decodeError(rec).Error.Code)
}

func (s *APISuite) TestGameFlow() {
	s.createRoom("AB2C4D", "alice", "Alice")

	rec := s.request(http.MethodPost, "/api/v1/rooms/AB2C4D/join", map[string]string{
		"player_id": "bob",
		"name":      "Bob",
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	// Bob is not the host, so starting the round is rejected
	rec = s.request(http.MethodPost, "/api/v1/rooms/AB2C4D/actions", map[string]any{
		"type":      "START_GAME",
		"player_id": "bob",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(apierr.CodeActionNotAllowed, s.decodeError(rec).Error.Code)

	// The rejection left the room untouched
	rec = s.request(http.MethodGet, "/api/v1/rooms/AB2C4D", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("lobby", s.decodeRoomState(rec).Phase)

	// The host starts the round
	rec = s.request(http.MethodPost, "/api/v1/rooms/AB2C4D/actions", map[string]any{
		"type":      "START_GAME",
		"player_id": "alice",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("in-progress", s.decodeRoomState(rec).Phase)

	// A guess is recorded in the state
	rec = s.request(http.MethodPost, "/api/v1/rooms/AB2C4D/actions", map[string]any{
		"type":      "GUESS",
		"player_id": "bob",
		"payload":   map[string]int{"value": 50},
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	var gameState struct {
		Stage   string `json:"stage"`
		Guesses []struct {
			PlayerID string `json:"player_id"`
			Value    int    `json:"value"`
			Hint     string `json:"hint"`
		} `json:"guesses"`
	}
	state := s.decodeRoomState(rec)
	s.Require().NoError(json.Unmarshal(state.State, &gameState))
	s.Require().Len(gameState.Guesses, 1)
	s.Equal("bob", gameState.Guesses[0].PlayerID)
	s.Equal(50, gameState.Guesses[0].Value)
	s.Contains([]string{"higher", "lower", "correct"}, gameState.Guesses[0].Hint)
}

func (s *APISuite) TestActionRequiresType() {
	s.createRoom("AB2C4D", "alice", "Alice")

	rec := s.request(http.MethodPost, "/api/v1/rooms/AB2C4D/actions", map[string]string{
		"player_id": "alice",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(apierr.CodeInvalidRequest, s.decodeError(rec).Error.Code)
}

func (s *APISuite) TestActionRoomNotFound() {
	rec := s.request(http.MethodPost, "/api/v1/rooms/NOPE01/actions", map[string]string{
		"type":      "START_GAME",
		"player_id": "alice",
	})

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(apierr.CodeRoomNotFound, s.decodeError(rec).Error.Code)
}

func (s *APISuite) TestListGames() {
	rec := s.request(http.MethodGet, "/api/v1/games", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var games []response.GameInfo
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &games))
	s.Require().Len(games, 1)
	s.Equal("guess", games[0].ID)
	s.Equal("Number Guessing", games[0].DisplayName)
}

func (s *APISuite) TestHealth() {
	rec := s.request(http.MethodGet, "/api/v1/health", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var health response.Health
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &health))
	s.Equal("ok", health.Status)
}

func (s *APISuite) TestUnknownRouteReturns404() {
	rec := s.request(http.MethodGet, "/api/v1/nonsense", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}
