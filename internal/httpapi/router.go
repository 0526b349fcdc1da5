package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Version is stamped at build time (-ldflags "-X ...httpapi.Version=v1.2.3").
var Version = "dev"

// Router dispatches on stdlib http.ServeMux; method routing stays in the
// registration closures.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
	r.mux.HandleFunc("/version", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})
	return r
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterBoardRoutes wires the roster surface. Any viewer may list and
// update; create and delete are admin-gated.
func (r *Router) RegisterBoardRoutes(h *EmployeeHandler, auth *Auth) {
	r.Handle("/employees", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.ListEmployees(w, req)
		case http.MethodPost:
			auth.RequireAdmin(h.CreateEmployee)(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/employees/", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPut:
			h.UpdateEmployee(w, req)
		case http.MethodDelete:
			auth.RequireAdmin(h.DeleteEmployee)(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/departments", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListDepartments(w, req)
	})
}

// RegisterVehicleRoutes wires the vehicle pool. Everything but the listing
// is admin-gated.
func (r *Router) RegisterVehicleRoutes(h *VehicleHandler, auth *Auth) {
	r.Handle("/vehicles", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.ListVehicles(w, req)
		case http.MethodPost:
			auth.RequireAdmin(h.CreateVehicle)(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/vehicles/", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPut:
			auth.RequireAdmin(h.UpdateVehicle)(w, req)
		case http.MethodDelete:
			auth.RequireAdmin(h.DeleteVehicle)(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

// RegisterAdminRoutes wires login/logout plus the admin-only extras.
func (r *Router) RegisterAdminRoutes(auth *Auth, logo *LogoHandler, export *ExportHandler) {
	r.Handle("/admin/login", auth.Login)
	r.Handle("/admin/logout", auth.Logout)
	r.Handle("/logo", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		auth.RequireAdmin(logo.Upload)(w, req)
	})
	r.Handle("/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		auth.RequireAdmin(export.Export)(w, req)
	})
}

// RegisterWSRoute wires the push channel.
func (r *Router) RegisterWSRoute(h *WSHandler) {
	r.Handle("/ws", h.Serve)
}

// RegisterStatic serves the board pages. /admin.html redirects to the login
// page unless the request carries a valid admin cookie.
func (r *Router) RegisterStatic(publicDir string, auth *Auth) {
	fs := http.FileServer(http.Dir(publicDir))
	r.mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.TrimPrefix(req.URL.Path, "/") == "admin.html" && !auth.ValidRequest(req) {
			http.Redirect(w, req, "/admin-login.html", http.StatusFound)
			return
		}
		fs.ServeHTTP(w, req)
	}))
}
