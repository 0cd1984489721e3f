package integration

import (
	"context"
	"net/http"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/testing/tmpfs"
	"github.com/shaie/browze/pkg/zooclient"
	"github.com/spf13/afero"
)

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "integration")
}

func node(parent, label string, leaf bool, children ...*api.Node) *api.Node {
	return &api.Node{Label: label, Parent: parent, Leaf: leaf, Children: children}
}

func expectTree(expected, actual *api.Node) {
	diff, err := DiffTrees(expected, actual)
	Expect(err).NotTo(HaveOccurred())
	Expect(diff).To(BeEmpty(), diff)
}

var _ = Describe("browze", func() {
	var (
		env     *Env
		dir     string
		cleanup func()
		ctx     = context.Background()
	)

	BeforeEach(func() {
		var fs afero.Afero
		fs, dir, cleanup = tmpfs.Tmpfs(GinkgoT())
		tmpfs.WriteTree(GinkgoT(), fs, "/", map[string]string{
			"a/b/c": "hello",
			"a/x":   "xdata",
			"e/":    "",
			"z":     "",
		})

		var err error
		env, err = NewEnv(GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		env.Close()
		cleanup()
	})

	It("refuses to browse before connecting", func() {
		_, err := env.Client.Browse(ctx, "/", false)
		Expect(err).To(MatchError("Must first /connect to ZK!"))

		fetchErr, ok := err.(*zooclient.FetchError)
		Expect(ok).To(BeTrue())
		Expect(fetchErr.StatusCode).To(Equal(http.StatusInternalServerError))

		status, err := env.Client.Status(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(status.ConnectString).To(BeNil())
	})

	Context("connected to a directory", func() {
		BeforeEach(func() {
			result, err := env.Client.Connect(ctx, "file://"+dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Msg).To(Equal("Successfully connected to ZooKeeper at file://" + dir))
		})

		It("reports the connect string", func() {
			status, err := env.Client.Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.ConnectString).NotTo(BeNil())
			Expect(*status.ConnectString).To(Equal("file://" + dir))
		})

		It("opens at the root", func() {
			Expect(env.Navigator.Start(ctx, "")).To(Succeed())
			Expect(env.Navigator.History.Path()).To(Equal("/"))

			state := env.Navigator.Reconciler.Snapshot()
			Expect(state.Expanded).To(Equal([]string{"/"}))
			Expect(state.SelectedPath).To(Equal([]string{"/"}))
			Expect(state.Data).To(Equal(""))
			expectTree(node("", "/", false,
				node("/", "a", false),
				node("/", "e", true),
				node("/", "z", true),
			), state.Tree[0])
		})

		It("goes straight to a deep leaf", func() {
			Expect(env.Navigator.Start(ctx, "/a/b/c")).To(Succeed())

			state := env.Navigator.Reconciler.Snapshot()
			Expect(state.SelectedNode).To(Equal("/a/b/c"))
			Expect(state.Data).To(Equal("hello"))
			Expect(state.Stat.DataLength).To(Equal(int32(5)))
			Expect(state.Expanded).To(Equal([]string{"/", "/a", "/a/b"}))
			Expect(env.Navigator.SelectedPrefix(2)).To(Equal("/a/b"))
			expectTree(node("", "/", false,
				node("/", "a", false,
					node("/a", "b", false,
						node("/a/b", "c", true),
					),
					node("/a", "x", true),
				),
				node("/", "e", true),
				node("/", "z", true),
			), state.Tree[0])
		})

		It("merges shallow fetches into the tree", func() {
			Expect(env.Navigator.Start(ctx, "/")).To(Succeed())
			Expect(env.Navigator.Go(ctx, "/a")).To(Succeed())
			Expect(env.Navigator.Go(ctx, "/a/x")).To(Succeed())

			state := env.Navigator.Reconciler.Snapshot()
			Expect(state.SelectedNode).To(Equal("/a/x"))
			Expect(state.Data).To(Equal("xdata"))
			Expect(state.Expanded).To(Equal([]string{"/", "/a"}))

			moved, err := env.Navigator.Back(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(moved).To(BeTrue())
			Expect(env.Navigator.History.Path()).To(Equal("/a"))
		})

		It("keeps the tree when a path is missing", func() {
			Expect(env.Navigator.Start(ctx, "/")).To(Succeed())

			err := env.Navigator.Go(ctx, "/nope")
			Expect(err).To(MatchError("Path not found in ZooKeeper: /nope"))

			state := env.Navigator.Reconciler.Snapshot()
			Expect(state.Error).To(Equal("Path not found in ZooKeeper: /nope"))
			Expect(state.Tree).To(HaveLen(1))
			Expect(state.Expanded).To(Equal([]string{"/"}))
		})
	})
})
