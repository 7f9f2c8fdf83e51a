package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin   = "join"
	MsgWatch  = "watch" // spectate without piloting
	MsgLeave  = "leave"
	MsgInput  = "input"
	MsgCreate = "create" // create session
	MsgList   = "list"   // list sessions
)

// Server -> Client message types
const (
	MsgState    = "state"
	MsgWelcome  = "welcome"
	MsgSessions = "sessions"
	MsgJoined   = "joined"
	MsgCreated  = "created" // session created, client should navigate
	MsgEnded    = "ended"   // session closed by its pilot
	MsgError    = "error"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is sent by the pilot at 20Hz
type ClientInput struct {
	MX    float64 `json:"mx"`    // pointer X (world coords)
	MY    float64 `json:"my"`    // pointer Y (world coords)
	Boost bool    `json:"boost"` // held
	Split bool    `json:"split"` // pressed since the last input
}

// JoinMsg is sent to pilot or watch a session
type JoinMsg struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
}

// CreateMsg is sent when a player wants to create a session
type CreateMsg struct {
	Name        string `json:"name"`
	SessionName string `json:"sname"`
	Seed        int64  `json:"seed,omitempty"`
}

// CellState is broadcast per player cell
type CellState struct {
	ID    string  `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	VX    float64 `json:"vx" msgpack:"vx"`
	VY    float64 `json:"vy" msgpack:"vy"`
	Score float64 `json:"sc" msgpack:"sc"`
	R     float64 `json:"r" msgpack:"r"` // radius
}

// AIState is broadcast per AI cell
type AIState struct {
	ID    string  `json:"id" msgpack:"id"`
	Name  string  `json:"n" msgpack:"n"`
	Color string  `json:"c" msgpack:"c"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Score float64 `json:"sc" msgpack:"sc"`
	R     float64 `json:"r" msgpack:"r"`
}

// FoodState is broadcast per food pellet
type FoodState struct {
	ID    string  `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Color string  `json:"c" msgpack:"c"`
}

// Snapshot is the full world state broadcast
type Snapshot struct {
	Tick     uint64      `json:"tick" msgpack:"tick"`
	Time     float64     `json:"time" msgpack:"time"` // sim clock ms
	Camera   Vec2        `json:"cam" msgpack:"cam"`
	Score    float64     `json:"sc" msgpack:"sc"`
	Boosting bool        `json:"b" msgpack:"b"`
	Cells    []CellState `json:"p" msgpack:"p"`
	AIs      []AIState   `json:"ai" msgpack:"ai"`
	Food     []FoodState `json:"f" msgpack:"f"`
}

// WelcomeMsg is sent after joining
type WelcomeMsg struct {
	Name      string  `json:"name"`
	WorldSize float64 `json:"world"`
	Pilot     bool    `json:"pilot"`
}

// SessionInfo is used in the session list
type SessionInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Pilot    string  `json:"pilot"`
	Watchers int     `json:"watchers"`
	Score    float64 `json:"score"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
