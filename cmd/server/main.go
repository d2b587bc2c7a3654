package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/booksight/qbo-connect/authflow"
	connectionrepo "github.com/booksight/qbo-connect/connections/gormrepo"
	"github.com/booksight/qbo-connect/internal/config"
	"github.com/booksight/qbo-connect/internal/database"
	"github.com/booksight/qbo-connect/qbo"
	"github.com/booksight/qbo-connect/server"
	userrepo "github.com/booksight/qbo-connect/users/gormrepo"
	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	godotenv.Load()

	c := config.New()
	displayAppname(c.GetAppName())

	db, err := database.Connect(c, c.GetEnv())
	if err != nil {
		return err
	}

	oauthCfg, err := qbo.OAuthConfig(context.Background(), c)
	if err != nil {
		return err
	}

	userRepo := userrepo.New(db)
	connectionRepo := connectionrepo.New(db)

	flow, err := authflow.NewService(userRepo, connectionRepo, oauthCfg, c.GetStateSecret(), c.GetEnvironment())
	if err != nil {
		return err
	}
	lifecycle, err := qbo.NewLifecycle(oauthCfg, connectionRepo)
	if err != nil {
		return err
	}

	handler, err := server.New(c, server.Deps{
		Users:       userRepo,
		Connections: connectionRepo,
		Flow:        flow,
		Lifecycle:   lifecycle,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
