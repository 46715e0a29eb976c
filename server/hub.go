package server

import (
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/chortbauer/psychroflow"
)

// Msg is a request from the peer.
type Msg struct {
	Type string `json:"type"`
	// pressure, Pa; 0 selects the standard pressure
	Pressure float64 `json:"pressure,omitempty"`
	// height above sea level, m; used by "pressure" requests
	Height float64 `json:"height,omitempty"`
	// parameters of a "state" request
	TDryBulb float64 `json:"t_dry_bulb,omitempty"`
	RelHum   float64 `json:"rel_hum,omitempty"`
	// flows of a "mix" request
	Flows []FlowSpec `json:"flows,omitempty"`
}

// FlowSpec is one air flow of a "mix" request.
type FlowSpec struct {
	// volume flow, m3/h
	VolumeFlow float64 `json:"volume_flow_m3h"`
	// dry bulb temperature, degree C
	TDryBulb float64 `json:"t_dry_bulb"`
	// relative humidity, 0 to 1
	RelHum float64 `json:"rel_hum"`
}

// Reply is the answer pushed back to the peer.
type Reply struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`

	Pressure  float64 `json:"pressure,omitempty"`
	TDryBulb  float64 `json:"t_dry_bulb,omitempty"`
	TWetBulb  float64 `json:"t_wet_bulb,omitempty"`
	TDewPoint float64 `json:"t_dew_point,omitempty"`
	RelHum    float64 `json:"rel_hum,omitempty"`
	HumRatio  float64 `json:"hum_ratio,omitempty"`
	Enthalpy  float64 `json:"moist_air_enthalpy,omitempty"`

	VolumeFlow         float64 `json:"volume_flow_m3h,omitempty"`
	Regime             string  `json:"phase_regime,omitempty"`
	CondensateMassFlow float64 `json:"condensate_mass_flow,omitempty"`
	Summary            string  `json:"summary,omitempty"`
}

// Hub serves one websocket peer. Requests are independent pure
// computations, so one hub per connection needs no shared state.
type Hub struct {
	conn *websocket.Conn
}

func NewHub(conn *websocket.Conn) *Hub {
	return &Hub{conn: conn}
}

// Run reads requests until the peer disconnects.
func (h *Hub) Run() {
	for {
		var msg Msg
		if err := h.conn.ReadJSON(&msg); err != nil {
			log.WithError(err).Info("peer gone")
			return
		}

		reply := Handle(msg)
		if err := h.conn.WriteJSON(&reply); err != nil {
			log.WithError(err).Error("write failed")
			return
		}
	}
}

// Handle computes the reply for one request.
func Handle(msg Msg) Reply {
	pressure := msg.Pressure
	if pressure == 0 {
		pressure = psychroflow.StandardPressure
	}

	switch msg.Type {
	case "pressure":
		return Reply{
			Type:     "pressure",
			Pressure: psychroflow.GetPressureFromHeight(msg.Height),
		}

	case "state":
		has, err := psychroflow.NewHumidAirStateFromTDryBulbRelHum(
			msg.TDryBulb, msg.RelHum, pressure)
		if err != nil {
			return errorReply(err)
		}
		return Reply{
			Type:      "state",
			Pressure:  has.Pressure,
			TDryBulb:  has.TDryBulb,
			TWetBulb:  has.TWetBulb,
			TDewPoint: has.TDewPoint,
			RelHum:    has.RelHum,
			HumRatio:  has.HumRatio,
			Enthalpy:  has.MoistAirEnthalpy,
		}

	case "mix":
		hafs := make([]psychroflow.HumidAirFlow, 0, len(msg.Flows))
		for _, f := range msg.Flows {
			has, err := psychroflow.NewHumidAirStateFromTDryBulbRelHum(
				f.TDryBulb, f.RelHum, pressure)
			if err != nil {
				return errorReply(err)
			}
			hafs = append(hafs, psychroflow.NewHumidAirFlow(f.VolumeFlow/3600, has))
		}

		awf, err := psychroflow.MixHumidAirFlows(hafs)
		if err != nil {
			return errorReply(err)
		}

		haf := awf.HumidAirFlow
		return Reply{
			Type:               "mix",
			Pressure:           haf.HumidAirState.Pressure,
			TDryBulb:           haf.HumidAirState.TDryBulb,
			TDewPoint:          haf.HumidAirState.TDewPoint,
			RelHum:             haf.HumidAirState.RelHum,
			HumRatio:           haf.HumidAirState.HumRatio,
			VolumeFlow:         haf.VolumeFlow * 3600,
			Regime:             string(awf.Regime),
			CondensateMassFlow: awf.CondensateMassFlow(),
			Summary:            haf.StrShort(),
		}

	default:
		return Reply{Type: "error", Error: "no such request type: " + msg.Type}
	}
}

func errorReply(err error) Reply {
	return Reply{Type: "error", Error: err.Error()}
}
