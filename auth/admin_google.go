package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/models"
)

// GoogleAdminLoginHandler handles admin login via Google OAuth2. First-time
// admins are created unapproved and must go through the approval workflow.
func GoogleAdminLoginHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	token, err := verifyIDToken(ctx, req.IDToken)
	if err != nil {
		slog.Warn("admin ID token verification failed", "error", err)
		http.Error(w, "Invalid or revoked ID token", http.StatusUnauthorized)
		return
	}

	email, ok := token.Claims["email"].(string)
	if !ok || email == "" {
		http.Error(w, "Email not found in token", http.StatusUnauthorized)
		return
	}
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)
	firebaseUserID := token.UID

	// Super admin shortcut
	if email == os.Getenv("SUPER_ADMIN_EMAIL") {
		issueTokenAndRespond(w, email, "superadmin", firebaseUserID, name, picture)
		return
	}

	// Regular admin flow
	var admin models.Admin
	err = db.Where("email = ?", email).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		// Create pending admin
		admin = models.Admin{
			Email:    email,
			Name:     name,
			Picture:  picture,
			Approved: false,
		}
		if err := db.Create(&admin).Error; err != nil {
			http.Error(w, "Failed to register admin", http.StatusInternalServerError)
			return
		}
		http.Error(w, "Admin registration pending approval", http.StatusForbidden)
		return
	} else if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if !admin.Approved {
		http.Error(w, "Admin not approved yet", http.StatusForbidden)
		return
	}

	issueTokenAndRespond(w, email, "admin", firebaseUserID, name, picture)
}

func issueTokenAndRespond(w http.ResponseWriter, email, role, userID, name, picture string) {
	resp := map[string]interface{}{
		"message": "Login successful",
		"role":    role,
		"token":   issueJWT(email, role, userID, name, picture),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
