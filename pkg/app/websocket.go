package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/daybookhq/journal-sync-service/global"
	"github.com/daybookhq/journal-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type LogType string

const (
	WebSocketServerPingInterval         = 25 * time.Second
	WebSocketServerPingWait             = 40 * time.Second
	LogInfo                     LogType = "info"
	LogError                    LogType = "error"
	LogWarn                     LogType = "warn"
)

func log(t LogType, msg string, fields ...zap.Field) {
	if t == LogError {
		global.Logger.Error(msg, fields...)
	} else if t == LogWarn {
		global.Logger.Warn(msg, fields...)
	} else if t == LogInfo {
		global.Logger.Info(msg, fields...)
	}
}

// WebSocketMessage is the wire frame: "Action|{json payload}".
type WebSocketMessage struct {
	Type string `json:"type"` // 操作类型，例如 "EntrySync", "EntryModify"
	Data []byte `json:"data"`
}

// WSUserData is the user record resolved during Authorization.
type WSUserData struct {
	UID      int64  `json:"uid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
	TokenManager TokenManager
}

// WebsocketClient 结构体来存储每个 WebSocket 连接及其相关状态
type WebsocketClient struct {
	conn        *gws.Conn
	done        chan struct{}
	Ctx         *gin.Context
	User        *UserEntity
	UserClients *ConnStorage
	SF          *singleflight.Group
}

// BindAndValid decodes a frame payload and validates it with the global validator.
// 基于全局验证器的 WebSocket 版本参数绑定和验证工具函数
func (c *WebsocketClient) BindAndValid(data []byte, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	if err := json.Unmarshal(data, obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: "Invalid message format",
		})
		return false, errs
	}

	if err := global.Validator.Validate.Struct(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			trans, _ := c.Ctx.Value("trans").(ut.Translator)
			for _, validationErr := range validationErrors {
				errs = append(errs, &ValidError{
					Key:     validationErr.Field(),
					Message: validationErr.Translate(trans),
				})
			}
		}
		return false, errs
	}
	return true, nil
}

// PingLoop 定期发送 Ping 消息
func (c *WebsocketClient) PingLoop(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			log(LogInfo, "WebsocketServer Client Close Ping")
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				log(LogError, "WebsocketServer Client Ping err", zap.Error(err))
				return
			}
		}
	}
}

// ToResponse 将结果转换为 JSON 格式并发送给客户端
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action ...string) {
	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Msg(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	c.send(actionType, content, false, false)
	codeObj.Reset()
}

// BroadcastResponse 将结果广播给该用户的所有连接
// excludeSelf 为 true 时跳过当前连接
func (c *WebsocketClient) BroadcastResponse(codeObj *code.Code, excludeSelf bool, action ...string) {
	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Msg(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	c.send(actionType, content, true, excludeSelf)
	codeObj.Reset()
}

func (c *WebsocketClient) send(actionType string, content any, isBroadcast bool, isExcludeSelf bool) {
	responseBytes, _ := json.Marshal(content)
	if actionType != "" {
		responseBytes = []byte(fmt.Sprintf(`%s|%s`, actionType, string(responseBytes)))
	}
	if isBroadcast {
		c.broadcast(responseBytes, isExcludeSelf)
	} else {
		c.message(responseBytes)
	}
}

func (c *WebsocketClient) message(payload []byte) {
	_ = c.conn.WriteMessage(gws.OpcodeText, payload)
}

func (c *WebsocketClient) broadcast(payload []byte, isExcludeSelf bool) {
	var b = gws.NewBroadcaster(gws.OpcodeText, payload)
	defer b.Close()

	for _, uc := range *c.UserClients {
		if uc.conn == nil {
			continue
		}
		if isExcludeSelf && uc.conn == c.conn {
			continue
		}
		_ = b.Broadcast(uc.conn)
	}
}

// ------------------------------------> WebsocketServer

type ConnStorage = map[*gws.Conn]*WebsocketClient

type WebsocketServer struct {
	handlers        map[string]func(*WebsocketClient, *WebSocketMessage)
	userDataHandler func(*WebsocketClient, int64) (*WSUserData, error)
	openHandler     func(*WebsocketClient)
	closeHandler    func(*WebsocketClient)
	clients         ConnStorage
	userClients     map[int64]ConnStorage
	mu              sync.Mutex
	up              *gws.Upgrader
	config          *WebsocketServerConfig
}

func NewWebsocketServer(c WebsocketServerConfig) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	wss := WebsocketServer{
		handlers:    make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:     make(ConnStorage),
		userClients: make(map[int64]ConnStorage),
		config:      &c,
	}
	return &wss
}

func (w *WebsocketServer) Upgrade() {
	w.up = gws.NewUpgrader(w, &w.config.GWSOption)
}

func (w *WebsocketServer) Run() gin.HandlerFunc {
	return func(c *gin.Context) {
		w.Upgrade()
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			log(LogError, "WebsocketServer Start err", zap.Error(err))
			return
		}
		client := &WebsocketClient{conn: socket, done: make(chan struct{}), Ctx: c, SF: new(singleflight.Group)}
		w.AddClient(client)
		log(LogInfo, "WebsocketServer Start", zap.String("type", "ReadLoop"))
		go socket.ReadLoop()
	}
}

// Use registers a frame handler for an action type.
func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// UserDataSelectUse registers the user lookup used during Authorization.
func (w *WebsocketServer) UserDataSelectUse(handler func(*WebsocketClient, int64) (*WSUserData, error)) {
	w.userDataHandler = handler
}

// OnAuthorized registers a callback invoked after a client authorizes.
func (w *WebsocketServer) OnAuthorized(handler func(*WebsocketClient)) {
	w.openHandler = handler
}

// OnLeave registers a callback invoked when an authorized client disconnects.
func (w *WebsocketServer) OnLeave(handler func(*WebsocketClient)) {
	w.closeHandler = handler
}

func (w *WebsocketServer) authorizationFailed(c *WebsocketClient, err error) {
	log(LogError, "WebsocketServer Authorization FAILD", zap.Error(err))
	c.ToResponse(code.ErrorInvalidUserAuthToken, "Authorization")
	time.Sleep(2 * time.Second)
	c.conn.WriteClose(1000, []byte("AuthorizationFaild"))
}

func (w *WebsocketServer) Authorization(c *WebsocketClient, msg *WebSocketMessage) {
	user, err := w.config.TokenManager.Parse(string(msg.Data))
	if err != nil {
		w.authorizationFailed(c, err)
		return
	}

	// 用户有效性强制验证
	userData, err := w.userDataHandler(c, user.UID)
	if userData == nil || err != nil {
		w.authorizationFailed(c, fmt.Errorf("user not exist: %w", err))
		return
	}

	user.Nickname = userData.Nickname

	log(LogInfo, "WebsocketServer Authorization", zap.Int64("uid", user.UID), zap.String("nickname", user.Nickname))
	c.User = user
	w.AddUserClient(c)

	userClients := w.userClients[user.UID]
	c.UserClients = &userClients
	c.ToResponse(code.Success, "Authorization")
	log(LogInfo, "WebsocketServer User Enters", zap.Int64("uid", c.User.UID), zap.Int("Count", len(userClients)))
	go c.PingLoop(w.config.PingInterval)

	if w.openHandler != nil {
		w.openHandler(c)
	}
}

// PushToUser sends an action frame to every live connection of a user.
// Returns the number of connections written to.
func (w *WebsocketServer) PushToUser(uid int64, action string, data any) int {
	w.mu.Lock()
	clients := make([]*WebsocketClient, 0, len(w.userClients[uid]))
	for _, uc := range w.userClients[uid] {
		clients = append(clients, uc)
	}
	w.mu.Unlock()

	if len(clients) == 0 {
		return 0
	}

	content := Res{
		Code:   code.Success.Code(),
		Status: code.Success.Status(),
		Data:   data,
	}
	payload, _ := json.Marshal(content)
	if action != "" {
		payload = []byte(fmt.Sprintf(`%s|%s`, action, string(payload)))
	}

	b := gws.NewBroadcaster(gws.OpcodeText, payload)
	defer b.Close()
	n := 0
	for _, uc := range clients {
		if uc.conn == nil {
			continue
		}
		if err := b.Broadcast(uc.conn); err == nil {
			n++
		}
	}
	return n
}

// UserConnCount reports how many live connections a user has.
func (w *WebsocketServer) UserConnCount(uid int64) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.userClients[uid])
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
}

func (w *WebsocketServer) AddUserClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userClients[c.User.UID] == nil {
		w.userClients[c.User.UID] = make(ConnStorage)
	}
	w.userClients[c.User.UID][c.conn] = c
}

func (w *WebsocketServer) RemoveUserClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.userClients[c.User.UID], c.conn)
	if len(w.userClients[c.User.UID]) == 0 {
		delete(w.userClients, c.User.UID)
	}
	log(LogInfo, "WebsocketServer Client Remove", zap.Int("userCount", len(w.clients)))
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	log(LogInfo, "WebsocketServer Client Connect", zap.Int("Count", len(w.clients)))
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {
	c := w.GetClient(conn)
	w.RemoveClient(conn)

	if c == nil {
		return
	}

	if c.User != nil {
		close(c.done)
		log(LogInfo, "WebsocketServer User Leave", zap.Int64("uid", c.User.UID))
		w.RemoveUserClient(c)
		if w.closeHandler != nil {
			w.closeHandler(c)
		}
	}

	log(LogInfo, "WebsocketServer Client Leave", zap.Int("Count", len(w.clients)))
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	messageStr := message.Data.String()
	index := strings.Index(messageStr, "|")

	var msg WebSocketMessage
	if index != -1 {
		msg.Type = messageStr[:index]
		msg.Data = []byte(messageStr[index+1:])
	} else {
		log(LogError, "WebsocketServer OnMessage", zap.String("type", "Illegal message type"))
		return
	}

	if msg.Type == "Authorization" {
		w.Authorization(c, &msg)
		return
	}

	// 验证用户是否登录
	if c.User == nil {
		c.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	handler, exists := w.handlers[msg.Type]
	if exists {
		log(LogInfo, "WebsocketServer OnMessage", zap.String("Type", msg.Type))
		handler(c, &msg)
	} else {
		log(LogError, "WebsocketServer OnMessage", zap.String("msg", "Unknown message type"))
	}
}
