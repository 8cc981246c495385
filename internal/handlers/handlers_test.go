package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"chat-backend/internal/auth"
	"chat-backend/internal/database"
	"chat-backend/internal/models"
	"chat-backend/internal/presence"
	"chat-backend/internal/services"
	ws "chat-backend/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type server struct {
	*httptest.Server
	db       *database.BadgerDB
	auth     *auth.Service
	registry *ws.Registry
}

func newServer(t *testing.T) *server {
	t.Helper()
	db, err := database.NewBadgerDB("")
	require.NoError(t, err)

	registry := ws.NewRegistry()
	authSvc := auth.NewService(db, []byte("test-secret"), time.Hour)
	members := services.NewMembershipService(db, registry)
	router := services.NewRouter(db, registry, members)
	groups := services.NewGroupService(db, members)

	ctx, cancel := context.WithCancel(context.Background())
	origins := []string{"http://chat.example.com"}
	engine := NewEngine(authSvc,
		NewWebSocketHandlers(ctx, authSvc, registry, router, origins, 64),
		NewGroupHandlers(groups, presence.NewLocalTracker(registry)),
		origins)

	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		registry.Close()
		srv.Close()
		cancel()
		_ = db.Close()
	})
	return &server{Server: srv, db: db, auth: authSvc, registry: registry}
}

func (s *server) user(t *testing.T, name string, verified bool) (models.Principal, string) {
	t.Helper()
	u := &models.User{ID: uuid.NewString(), Email: name + "@example.com", FirstName: name, IsVerified: verified}
	require.NoError(t, s.db.PutUser(context.Background(), u))
	p := models.Principal{ID: u.ID, Email: u.Email, Role: models.RoleUser}
	token, err := s.auth.GenerateToken(p)
	require.NoError(t, err)
	return p, token
}

func (s *server) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (s *server) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Config.Handler.ServeHTTP(w, r)
	return w
}

func send(t *testing.T, conn *websocket.Conn, event models.EventName, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(models.Frame{Event: event, Data: raw}))
}

func read(t *testing.T, conn *websocket.Conn) (models.EventName, map[string]any) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame models.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	var data map[string]any
	require.NoError(t, json.Unmarshal(frame.Data, &data))
	return frame.Event, data
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name, header, query, want string
	}{
		{name: "header", header: "Bearer abc", want: "abc"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "query", query: "abc", want: "abc"},
		{name: "header wins", header: "Bearer abc", query: "xyz", want: "abc"},
		{name: "other scheme", header: "Basic abc", want: ""},
		{name: "none", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws?token="+tc.query, nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			require.Equal(t, tc.want, BearerToken(r))
		})
	}
}

func TestHandshake_Rejected(t *testing.T) {
	s := newServer(t)
	_, unverified := s.user(t, "eve", false)

	cases := map[string]struct {
		token, message string
	}{
		"missing":    {token: "", message: "Authentication required"},
		"garbage":    {token: "not-a-jwt", message: "Authentication failed"},
		"unverified": {token: unverified, message: "Authentication failed"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?token=" + tc.token

			_, resp, err := websocket.DefaultDialer.Dial(url, nil)

			req.ErrorIs(err, websocket.ErrBadHandshake)
			req.Equal(http.StatusUnauthorized, resp.StatusCode)
			var body errorResponse
			req.NoError(json.NewDecoder(resp.Body).Decode(&body))
			req.Equal(tc.message, body.Error)
			req.Zero(s.registry.Len())
		})
	}
}

func TestHandshake_ForeignOrigin(t *testing.T) {
	s := newServer(t)
	_, token := s.user(t, "alice", true)
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?token=" + token

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example.com"}})

	require.Error(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebSocket_DirectMessage(t *testing.T) {
	req := require.New(t)
	s := newServer(t)
	alice, aliceToken := s.user(t, "alice", true)
	bob, bobToken := s.user(t, "bob", true)

	// Given both users connected
	a, b := s.dial(t, aliceToken), s.dial(t, bobToken)
	req.Eventually(func() bool {
		return s.registry.UserConnections(alice.ID) == 1 && s.registry.UserConnections(bob.ID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// When alice messages bob
	send(t, a, models.EventDirectMessage, map[string]string{"receiverId": bob.ID, "content": "hello"})

	// Then bob gets the message and alice the acknowledgement
	event, data := read(t, b)
	req.Equal(models.EventDirectMessage, event)
	req.Equal("hello", data["content"])
	req.Equal(alice.ID, data["senderId"])

	event, ack := read(t, a)
	req.Equal(models.EventMessageSent, event)
	req.Equal(data["id"], ack["id"])
	req.Equal(bob.ID, ack["receiverId"])
}

func TestWebSocket_GroupFlow(t *testing.T) {
	req := require.New(t)
	s := newServer(t)
	alice, aliceToken := s.user(t, "alice", true)
	bob, bobToken := s.user(t, "bob", true)

	// Given a group created over REST by alice
	w := s.do(t, http.MethodPost, "/api/groups", aliceToken, map[string]string{"name": "gophers"})
	req.Equal(http.StatusCreated, w.Code)
	var group models.Group
	req.NoError(json.Unmarshal(w.Body.Bytes(), &group))

	a, b := s.dial(t, aliceToken), s.dial(t, bobToken)
	req.Eventually(func() bool {
		return s.registry.UserConnections(alice.ID) == 1 && s.registry.UserConnections(bob.ID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// When both join and bob posts
	send(t, a, models.EventJoinGroup, map[string]string{"groupId": group.ID})
	event, _ := read(t, a)
	req.Equal(models.EventGroupJoined, event)

	send(t, b, models.EventJoinGroup, map[string]string{"groupId": group.ID})
	event, _ = read(t, b)
	req.Equal(models.EventGroupJoined, event)
	event, data := read(t, a)
	req.Equal(models.EventUserJoined, event)
	req.Equal(bob.ID, data["userId"])

	send(t, b, models.EventGroupMessage, map[string]string{"groupId": group.ID, "content": "hi all"})

	// Then both receive it
	for _, conn := range []*websocket.Conn{a, b} {
		event, data := read(t, conn)
		req.Equal(models.EventGroupMessage, event)
		req.Equal("hi all", data["content"])
	}

	// And the membership is visible over REST
	w = s.do(t, http.MethodGet, "/api/groups/"+group.ID+"/members", aliceToken, nil)
	req.Equal(http.StatusOK, w.Code)
	var members []models.Member
	req.NoError(json.Unmarshal(w.Body.Bytes(), &members))
	req.Len(members, 2)
}

func TestWebSocket_InvalidFrameKeepsConnection(t *testing.T) {
	req := require.New(t)
	s := newServer(t)
	alice, token := s.user(t, "alice", true)
	conn := s.dial(t, token)
	req.Eventually(func() bool { return s.registry.UserConnections(alice.ID) == 1 },
		2*time.Second, 10*time.Millisecond)

	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte("{")))
	event, data := read(t, conn)
	req.Equal(models.EventError, event)
	req.Equal("Invalid payload", data["message"])

	send(t, conn, "typing", map[string]string{})
	event, data = read(t, conn)
	req.Equal(models.EventError, event)
	req.Equal("Unknown event", data["message"])
}

func TestWebSocket_DisconnectDeregisters(t *testing.T) {
	s := newServer(t)
	alice, token := s.user(t, "alice", true)
	conn := s.dial(t, token)
	require.Eventually(t, func() bool { return s.registry.UserConnections(alice.ID) == 1 },
		2*time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return s.registry.Len() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestGroupsAPI(t *testing.T) {
	s := newServer(t)
	_, aliceToken := s.user(t, "alice", true)
	_, bobToken := s.user(t, "bob", true)

	w := s.do(t, http.MethodPost, "/api/groups", aliceToken, map[string]string{"name": "gophers"})
	require.Equal(t, http.StatusCreated, w.Code)
	var group models.Group
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &group))

	t.Run("should require a credential", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/groups", "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
	})

	t.Run("should reject short names", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/groups", aliceToken, map[string]string{"name": "ab"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should list the caller's groups", func(t *testing.T) {
		req := require.New(t)
		w := s.do(t, http.MethodGet, "/api/groups", aliceToken, nil)
		req.Equal(http.StatusOK, w.Code)
		var groups []models.GroupSummary
		req.NoError(json.Unmarshal(w.Body.Bytes(), &groups))
		req.Len(groups, 1)
		req.Equal(group.ID, groups[0].ID)
		req.Equal(1, groups[0].MemberCount)

		w = s.do(t, http.MethodGet, "/api/groups", bobToken, nil)
		req.JSONEq(`[]`, w.Body.String())
	})

	t.Run("should hide members from non members", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/groups/"+group.ID+"/members", bobToken, nil)
		require.Equal(t, http.StatusForbidden, w.Code)
		require.JSONEq(t, `{"error":"You are not a member of this group"}`, w.Body.String())
	})

	t.Run("should report unknown groups", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/groups/"+uuid.NewString()+"/members", aliceToken, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPresenceAPI(t *testing.T) {
	req := require.New(t)
	s := newServer(t)
	alice, token := s.user(t, "alice", true)

	w := s.do(t, http.MethodGet, "/api/users/"+alice.ID+"/presence", token, nil)
	req.Equal(http.StatusOK, w.Code)
	req.JSONEq(`{"userId":"`+alice.ID+`","online":false,"connections":0}`, w.Body.String())

	s.dial(t, token)
	req.Eventually(func() bool {
		w := s.do(t, http.MethodGet, "/api/users/"+alice.ID+"/presence", token, nil)
		var st presence.Status
		return json.Unmarshal(w.Body.Bytes(), &st) == nil && st.Online && st.Connections == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCORS(t *testing.T) {
	s := newServer(t)

	t.Run("should answer preflight for allowed origins", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodOptions, "/api/groups", nil)
		r.Header.Set("Origin", "http://chat.example.com")
		w := httptest.NewRecorder()
		s.Config.Handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, "http://chat.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("should not allow foreign origins", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodOptions, "/api/groups", nil)
		r.Header.Set("Origin", "http://evil.example.com")
		w := httptest.NewRecorder()
		s.Config.Handler.ServeHTTP(w, r)

		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestOriginAllowed(t *testing.T) {
	require.True(t, OriginAllowed([]string{"*"}, "http://a.example.com"))
	require.True(t, OriginAllowed([]string{"http://a.example.com"}, ""))
	require.True(t, OriginAllowed([]string{"http://A.example.com"}, "http://a.example.com"))
	require.False(t, OriginAllowed([]string{"http://a.example.com"}, "http://b.example.com"))
}
