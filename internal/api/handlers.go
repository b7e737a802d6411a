package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/database"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/stats"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/types"
)

type AccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateMessageRequest struct {
	PostedBy        int    `json:"posted_by"`
	MessageText     string `json:"message_text"`
	TimePostedEpoch int64  `json:"time_posted_epoch"`
}

type UpdateMessageRequest struct {
	MessageText string `json:"message_text"`
}

func (s *SocialMediaApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *SocialMediaApp) writeError(w http.ResponseWriter, errResp *ApiError) {
	s.writeJson(w, errResp.StatusCode, errResp)
}

// writeEmpty answers lookups of resources that do not exist: 200, no body.
func (s *SocialMediaApp) writeEmpty(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func toAccount(acct database.Account) types.Account {
	return types.Account{
		AccountId: acct.Id,
		Username:  acct.Username,
		Password:  acct.Password,
	}
}

func toMessage(msg database.Message) types.Message {
	return types.Message{
		MessageId:       msg.Id,
		PostedBy:        msg.PostedBy,
		MessageText:     msg.MessageText,
		TimePostedEpoch: msg.TimePostedEpoch,
	}
}

func toMessages(msgs []database.Message) []types.Message {
	out := make([]types.Message, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, toMessage(msg))
	}
	return out
}

func pathId(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, false
	}
	return id, true
}

func (s *SocialMediaApp) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.log.Println("health check:", err)
		s.writeError(w, NewInternalServerError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *SocialMediaApp) register(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	acct, err := s.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.log.Println("register:", err)
		s.writeError(w, NewBadRequestFromError(err))
		return
	}

	s.incr(stats.AccountsRegistered)
	s.writeJson(w, http.StatusOK, toAccount(acct))
}

func (s *SocialMediaApp) login(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewUnauthorizedError())
		return
	}

	acct, ok, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.log.Println("login:", err)
	}
	if err != nil || !ok {
		s.incr(stats.LoginFailures)
		s.writeError(w, NewUnauthorizedError())
		return
	}

	s.writeJson(w, http.StatusOK, toAccount(acct))
}

func (s *SocialMediaApp) createMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	msg, err := s.messages.CreateMessage(r.Context(), database.CreateMessageParams{
		PostedBy:        req.PostedBy,
		MessageText:     req.MessageText,
		TimePostedEpoch: req.TimePostedEpoch,
	})
	if err != nil {
		s.log.Println("create message:", err)
		s.writeError(w, NewBadRequestFromError(err))
		return
	}

	s.incr(stats.MessagesCreated)
	s.writeJson(w, http.StatusOK, toMessage(msg))
}

func (s *SocialMediaApp) getAllMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.messages.ListMessages(r.Context())
	if err != nil {
		s.log.Println("list messages:", err)
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, toMessages(msgs))
}

func (s *SocialMediaApp) getMessageById(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r, "message_id")
	if !ok {
		s.writeError(w, NewBadRequestError())
		return
	}

	msg, found, err := s.messages.GetMessageByID(r.Context(), id)
	if err != nil {
		s.log.Println("get message:", err)
		s.writeError(w, NewInternalServerError(err))
		return
	}

	if !found {
		s.writeEmpty(w)
		return
	}

	s.writeJson(w, http.StatusOK, toMessage(msg))
}

func (s *SocialMediaApp) deleteMessageById(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r, "message_id")
	if !ok {
		s.writeError(w, NewBadRequestError())
		return
	}

	msg, found, err := s.messages.DeleteMessage(r.Context(), id)
	if err != nil {
		s.log.Println("delete message:", err)
		s.writeError(w, NewBadRequestFromError(err))
		return
	}

	if !found {
		s.writeEmpty(w)
		return
	}

	s.incr(stats.MessagesDeleted)
	s.writeJson(w, http.StatusOK, toMessage(msg))
}

func (s *SocialMediaApp) updateMessageById(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r, "message_id")
	if !ok {
		s.writeError(w, NewBadRequestError())
		return
	}

	var req UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	msg, err := s.messages.UpdateMessage(r.Context(), id, req.MessageText)
	if err != nil {
		s.log.Println("update message:", err)
		s.writeError(w, NewBadRequestFromError(err))
		return
	}

	s.incr(stats.MessagesUpdated)
	s.writeJson(w, http.StatusOK, toMessage(msg))
}

func (s *SocialMediaApp) getMessagesByAccountId(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r, "account_id")
	if !ok {
		s.writeError(w, NewBadRequestError())
		return
	}

	msgs, err := s.messages.ListMessagesByAccount(r.Context(), id)
	if err != nil {
		s.log.Println("list messages by account:", err)
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, toMessages(msgs))
}
