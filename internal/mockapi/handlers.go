package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleLogin(c *gin.Context) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil || creds.Email == "" {
		respondError(c, http.StatusUnprocessableEntity, "The email field is required.")
		return
	}

	token := s.data.mintToken()
	respondSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         1,
			"name":       "Admin User",
			"first_name": "Admin",
			"last_name":  "User",
			"email":      creds.Email,
			"role":       "Admin",
		},
	}, "Login successful")
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, ok := c.Get("token"); ok {
		s.data.revokeToken(token.(string))
	}
	respondSuccess(c, http.StatusOK, gin.H{}, "Logged out successfully")
}

func (s *Server) handleProfile(c *gin.Context) {
	s.data.mu.Lock()
	admin := s.data.users[0]
	s.data.mu.Unlock()

	respondSuccess(c, http.StatusOK, gin.H{
		"id":         admin.ID,
		"name":       admin.FirstName + " " + admin.LastName,
		"first_name": admin.FirstName,
		"last_name":  admin.LastName,
		"email":      admin.Email,
		"role":       admin.Role,
	}, "")
}

func (s *Server) handleUserList(c *gin.Context) {
	s.data.mu.Lock()
	users := make([]userRecord, len(s.data.users))
	copy(users, s.data.users)
	s.data.mu.Unlock()

	// The real backend wraps the list twice.
	respondSuccess(c, http.StatusOK, []any{users}, "")
}

func (s *Server) handleUserCreate(c *gin.Context) {
	var user userRecord
	if err := c.ShouldBindJSON(&user); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid user payload.")
		return
	}

	s.data.mu.Lock()
	user.ID = s.data.nextUserID()
	if user.Status == "" {
		user.Status = "active"
	}
	user.CreatedAt = time.Now().Format("2006-01-02")
	s.data.users = append(s.data.users, user)
	s.data.mu.Unlock()

	// Create nests the record one level deeper than every other route.
	respondSuccess(c, http.StatusCreated, gin.H{"User": user}, "User created successfully")
}

func (s *Server) handleUserGet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id.")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for _, u := range s.data.users {
		if u.ID == id {
			respondSuccess(c, http.StatusOK, u, "")
			return
		}
	}
	respondError(c, http.StatusNotFound, "User not found.")
}

func (s *Server) handleUserUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id.")
		return
	}
	var patch userRecord
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid user payload.")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i, u := range s.data.users {
		if u.ID != id {
			continue
		}
		if patch.FirstName != "" {
			u.FirstName = patch.FirstName
		}
		if patch.LastName != "" {
			u.LastName = patch.LastName
		}
		if patch.Email != "" {
			u.Email = patch.Email
		}
		if patch.Phone != "" {
			u.Phone = patch.Phone
		}
		if patch.Role != "" {
			u.Role = patch.Role
		}
		if patch.Status != "" {
			u.Status = patch.Status
		}
		s.data.users[i] = u
		respondSuccess(c, http.StatusOK, u, "User updated successfully")
		return
	}
	respondError(c, http.StatusNotFound, "User not found.")
}

func (s *Server) handleUserDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id.")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i, u := range s.data.users {
		if u.ID == id {
			s.data.users = append(s.data.users[:i], s.data.users[i+1:]...)
			respondSuccess(c, http.StatusOK, gin.H{}, "User deleted successfully")
			return
		}
	}
	respondError(c, http.StatusNotFound, "User not found.")
}

func (s *Server) handleCardList(c *gin.Context) {
	s.data.mu.Lock()
	cards := make([]cardRecord, len(s.data.cards))
	copy(cards, s.data.cards)
	s.data.mu.Unlock()

	respondSuccess(c, http.StatusOK, cards, "")
}

func (s *Server) handleCardCreate(c *gin.Context) {
	var card cardRecord
	if err := c.ShouldBindJSON(&card); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid card payload.")
		return
	}

	s.data.mu.Lock()
	card.ID = s.data.nextCardID()
	if card.Status == "" {
		card.Status = "active"
	}
	s.data.cards = append(s.data.cards, card)
	s.data.mu.Unlock()

	respondSuccess(c, http.StatusCreated, card, "Card created successfully")
}

func (s *Server) handleCardCreateForUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id.")
		return
	}
	var card cardRecord
	if err := c.ShouldBindJSON(&card); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid card payload.")
		return
	}

	s.data.mu.Lock()
	card.ID = s.data.nextCardID()
	card.UserID = userID
	if card.Status == "" {
		card.Status = "active"
	}
	s.data.cards = append(s.data.cards, card)
	s.data.mu.Unlock()

	respondSuccess(c, http.StatusCreated, card, "Card created successfully")
}

func (s *Server) handleCardGet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid card id.")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for _, card := range s.data.cards {
		if card.ID == id {
			respondSuccess(c, http.StatusOK, card, "")
			return
		}
	}
	respondError(c, http.StatusNotFound, "Card not found.")
}

func (s *Server) handleCardUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid card id.")
		return
	}
	var patch cardRecord
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid card payload.")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i, card := range s.data.cards {
		if card.ID != id {
			continue
		}
		if patch.CardID != "" {
			card.CardID = patch.CardID
		}
		if patch.UserID != 0 {
			card.UserID = patch.UserID
		}
		if patch.Status != "" {
			card.Status = patch.Status
		}
		s.data.cards[i] = card
		respondSuccess(c, http.StatusOK, card, "Card updated successfully")
		return
	}
	respondError(c, http.StatusNotFound, "Card not found.")
}

func (s *Server) handleCardDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid card id.")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i, card := range s.data.cards {
		if card.ID == id {
			s.data.cards = append(s.data.cards[:i], s.data.cards[i+1:]...)
			respondSuccess(c, http.StatusOK, gin.H{}, "Card deleted successfully")
			return
		}
	}
	respondError(c, http.StatusNotFound, "Card not found.")
}

func (s *Server) handleAttendanceList(c *gin.Context) {
	s.data.mu.Lock()
	records := make([]attendanceRecord, len(s.data.attendance))
	copy(records, s.data.attendance)
	s.data.mu.Unlock()

	respondSuccess(c, http.StatusOK, records, "")
}

func (s *Server) handleAttendanceByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id.")
		return
	}

	s.data.mu.Lock()
	records := make([]attendanceRecord, 0)
	for _, a := range s.data.attendance {
		if a.UserID == userID {
			records = append(records, a)
		}
	}
	s.data.mu.Unlock()

	// The trailing space in the key is part of the contract.
	respondSuccess(c, http.StatusOK, gin.H{
		"user_id":                      userID,
		"Entry records For this user ": records,
	}, "")
}

func (s *Server) handleMonthlyAttendance(c *gin.Context) {
	s.data.mu.Lock()
	total := len(s.data.attendance)
	s.data.mu.Unlock()

	respondSuccess(c, http.StatusOK, gin.H{"total": total}, "")
}

func (s *Server) handleTransaction(c *gin.Context) {
	code := c.Param("code")

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	for _, card := range s.data.cards {
		if card.CardID != code {
			continue
		}
		name := "Unknown"
		for _, u := range s.data.users {
			if u.ID == card.UserID {
				name = u.FirstName + " " + u.LastName
				break
			}
		}
		record := attendanceRecord{
			ID:       s.data.nextAttendanceID(),
			UserID:   card.UserID,
			UserName: name,
			CardID:   code,
			Time:     time.Now().Format("2006-01-02 15:04:05"),
			Type:     "entry",
			Method:   "RFID",
		}
		s.data.attendance = append([]attendanceRecord{record}, s.data.attendance...)
		respondSuccess(c, http.StatusOK, record, "Attendance recorded")
		return
	}

	s.data.unknownCards = append(s.data.unknownCards, code)
	respondError(c, http.StatusNotFound, "Card not recognized.")
}

func (s *Server) handleUnknownCards(c *gin.Context) {
	s.data.mu.Lock()
	codes := make([]string, len(s.data.unknownCards))
	copy(codes, s.data.unknownCards)
	s.data.mu.Unlock()

	respondSuccess(c, http.StatusOK, gin.H{"code": codes}, "")
}
