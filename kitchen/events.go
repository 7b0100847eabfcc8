/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

// Outbound event names.
const (
	EventRoomCreated     = "room_created"
	EventJoinSuccess     = "join_success"
	EventErrorMessage    = "error_message"
	EventUpdateLobby     = "update_lobby"
	EventNewHost         = "new_host"
	EventGameStarted     = "game_started"
	EventUpdateGameState = "update_game_state"
	EventUpdateNeighbors = "update_neighbors"
	EventReceiveItem     = "receive_item"
	EventActionSuccess   = "action_success"
	EventActionFail      = "action_fail"
	EventClearAllItems   = "clear_all_items"
	EventLevelComplete   = "level_complete"
	EventStartNextLevel  = "start_next_level"
	EventGameOver        = "game_over"
	EventGameWon         = "game_won"
	EventShowAlert       = "show_alert"
)

// Message is one outbound event addressed to a single connection.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Sender delivers messages to connected clients. Send must not block; the
// engine calls it while holding a room lock.
type Sender interface {
	Send(conn string, msg Message)
}

type RoomJoined struct {
	RoomID string `json:"room_id"`
	IsHost bool   `json:"is_host"`
}

type Notice struct {
	Message string `json:"message"`
}

type Ack struct {
	Message string `json:"message"`
	Sound   string `json:"sound,omitempty"`
}

type LobbyPlayer struct {
	SID  string `json:"sid"`
	Name string `json:"name"`
}

type LobbyUpdate struct {
	Players []LobbyPlayer `json:"players"`
	HostSID string        `json:"host_sid"`
	RoomID  string        `json:"room_id"`
}

type NewHost struct {
	HostSID string `json:"host_sid"`
}

type GameStarted struct {
	InitialState  *StateView `json:"initial_state"`
	YourSID       string     `json:"your_sid"`
	YourName      string     `json:"your_name"`
	LeftNeighbor  string     `json:"left_neighbor"`
	RightNeighbor string     `json:"right_neighbor"`
}

type Neighbors struct {
	LeftNeighbor  string `json:"left_neighbor"`
	RightNeighbor string `json:"right_neighbor"`
}

type ReceiveItem struct {
	Item Item `json:"item"`
}

type LevelComplete struct {
	Level      int `json:"level"`
	LevelScore int `json:"level_score"`
	TotalScore int `json:"total_score"`
}

type GameOver struct {
	TotalScore int    `json:"total_score"`
	Message    string `json:"message"`
}

type GameWon struct {
	TotalScore int `json:"total_score"`
}

const (
	soundClick   = "click"
	soundSuccess = "success"
	soundError   = "error"
)
