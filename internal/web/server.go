package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
)

// RunServer starts the liveness endpoint used by external health probes.
// It blocks until the server exits or ctx is cancelled; run in a goroutine.
func RunServer(ctx context.Context, port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleLiveness)

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		log.Println("[INFO] Shutting down liveness server...")
		srv.Shutdown(context.Background()) //nolint:errcheck
	}()

	log.Printf("[INFO] Liveness server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		// Log the error but do NOT call log.Fatal — that would kill the whole process.
		log.Printf("[ERR] Liveness server exited: %v", err)
	}
}

func handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "I'm alive!")
}
