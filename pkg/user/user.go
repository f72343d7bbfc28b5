package user

type User struct {
	Id    int
	Uid   string
	Name  string
	Email string
}
