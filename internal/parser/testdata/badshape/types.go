package badshape

//destructure:derive Mutation
type Kind int

//destructure:derive Destructure
type Wrapper struct {
	inner
	Name string
}

type inner struct{}

//destructure:derive Destructure
type Clash struct {
	id string
	Id string
}
