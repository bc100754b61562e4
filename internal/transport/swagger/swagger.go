package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const SpecPath = "/openapi.yml"

// Handler serves the Swagger UI pointed at the document served by SpecHandler.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(SpecPath),
	)
}

func SpecHandler(doc []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(doc)
	}
}
