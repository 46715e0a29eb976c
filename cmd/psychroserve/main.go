// psychroserve runs the websocket recompute server.
package main

import (
	"flag"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"github.com/chortbauer/psychroflow/server"
)

func main() {
	config_path := flag.String("config", "psychroserve.ini", "server config file")
	flag.Parse()

	addr := ":9000"
	if file, err := ini.Load(*config_path); err == nil {
		addr = file.Section("server").Key("addr").MustString(addr)
	} else {
		log.WithError(err).Warn("config not readable, using defaults")
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	s := server.NewServer(addr, upgrader)
	log.Fatal(s.Serve())
}
