// internal/component/combat.go
package component

// Hit - одно попадание по фрукту.
type Hit struct {
	Damage      int  // обычный урон за попадание
	Devastation bool // гарантированно уничтожить не-босса
}
