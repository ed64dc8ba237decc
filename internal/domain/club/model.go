package club

type Club struct {
	ID   string
	Name string
}
