package dataset

// builtinSample is a tiny slice of the machine-learning QA dataset used
// when no JSONL file is available.
func builtinSample() []Row {
	return []Row{
		{
			Question: "What is gradient descent?",
			Answer:   "An iterative optimization algorithm that updates parameters in the direction of the negative gradient of the loss.",
		},
		{
			Question: "What is the difference between supervised and unsupervised learning?",
			Answer:   "Supervised learning fits labeled input-output pairs; unsupervised learning finds structure in unlabeled data.",
		},
		{
			Question: "What does regularization do in a machine learning model?",
			Answer:   "It penalizes model complexity to reduce overfitting, for example with L1 or L2 penalty terms.",
		},
		{
			Question: "What is overfitting?",
			Answer:   "When a model memorizes training data noise and fails to generalize to unseen examples.",
		},
		{
			Question: "What is a confusion matrix?",
			Answer:   "A table of predicted versus actual classes showing true/false positives and negatives.",
		},
		{
			Question: "Why do neural networks use activation functions?",
			Answer:   "They introduce non-linearity so stacked layers can represent non-linear functions.",
		},
		{
			Question: "What is cross-validation used for?",
			Answer:   "Estimating generalization performance by rotating held-out folds of the training data.",
		},
		{
			Question: "What is the bias-variance tradeoff?",
			Answer:   "The balance between a model that is too simple (high bias) and one that is too sensitive to training data (high variance).",
		},
	}
}
