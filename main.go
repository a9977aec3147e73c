package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mesh_node/internal/config"
	"mesh_node/internal/node"
	"mesh_node/internal/radio"
	"mesh_node/internal/sensor"
	"mesh_node/internal/utils"
)

func main() {
	var basePath string
	flag.StringVar(&basePath, "prefix", "", "Config file base path")
	flag.Parse()

	cfg, err := config.LoadMainConfig(basePath)
	if err != nil {
		log.Fatalf("Load config failed: %v", err)
	}

	nodeID := cfg.NodeID
	if nodeID == "" {
		nodeID = utils.DeriveNodeID()
	}

	logx := utils.NewManager(cfg.LogPath)

	udp, err := radio.NewUDPRadio(cfg.GroupAddr)
	if err != nil {
		log.Fatalf("Open radio failed: %v", err)
	}

	mesh := node.NewMeshNode(cfg, nodeID, udp, udp, pickSource(), nil, logx)

	log.Printf("Node ID: %s, group %s", nodeID, cfg.GroupAddr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	nodeErr := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		nodeErr <- mesh.Run(done)
	}()

	select {
	case <-stop:
		log.Println("Stopping node...")
		close(done)
	case err := <-nodeErr:
		if err != nil {
			log.Fatalf("Mesh node failed: %v", err)
		}
	}

	log.Println("Node stopped")
}

func pickSource() sensor.Source {
	if tz, err := sensor.NewThermalZone(sensor.DefaultThermalPath); err == nil {
		return tz
	}
	return sensor.NewSynthetic(27.0, 2.5, rand.New(rand.NewSource(time.Now().UnixNano())))
}
