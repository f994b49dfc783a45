// symbols.go --  This file is part of TightBinding project.
//
//	TightBinding is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package tightbinding

// SymbolTable owns the parameter handles of one model-construction session.
// Registration is append-only and idempotent: asking for a name already
// bound returns the same handle. The table is passed explicitly through the
// pipeline and is safe to share read-only once construction is done.
type SymbolTable struct {
	syms  map[string]*Sym
	order []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{syms: make(map[string]*Sym)}
}

// GetOrCreate returns the handle bound to name, creating it on first use.
func (t *SymbolTable) GetOrCreate(name string) *Sym {
	if s, ok := t.syms[name]; ok {
		return s
	}
	s := S(name)
	t.syms[name] = s
	t.order = append(t.order, name)
	return s
}

// Lookup returns the handle bound to name without creating one.
func (t *SymbolTable) Lookup(name string) (*Sym, bool) {
	s, ok := t.syms[name]
	return s, ok
}

// Names returns all registered names in registration order.
func (t *SymbolTable) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

func (t *SymbolTable) Len() int { return len(t.order) }
