package upstream

type UsersResponse struct {
	Users []string `json:"users"`
}
